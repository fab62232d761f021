package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/components"
	"github.com/pthm-cable/snakeclash/config"
)

func TestSpatialGridQueryMatchesBruteForce(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap[components.Position](world)

	rng := rand.New(rand.NewSource(7))
	grid := NewSpatialGrid(400, 20)

	var entities []ecs.Entity
	for i := 0; i < 300; i++ {
		// Some points fall outside the grid square and land in edge cells
		p := SquarePoint(rng, 480)
		e := mapper.NewEntity(&p)
		entities = append(entities, e)
		grid.Insert(e, p.X, p.Y)
	}

	queries := []struct {
		x, y, r float32
	}{
		{0, 0, 30},
		{195, 195, 25},
		{-230, 10, 15},
		{100, -50, 8},
	}

	for _, q := range queries {
		found := make(map[ecs.Entity]bool)
		for _, n := range grid.QueryRadiusInto(nil, q.x, q.y, q.r, 0, posMap) {
			found[n.E] = true
		}

		for _, e := range entities {
			p := posMap.Get(e)
			inside := distanceSq(p.X, p.Y, q.x, q.y) <= q.r*q.r
			if inside != found[e] {
				t.Errorf("query (%v,%v,r=%v): entity at (%v,%v) inside=%v found=%v",
					q.x, q.y, q.r, p.X, p.Y, inside, found[e])
			}
		}
	}
}

func TestSpatialGridClear(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap[components.Position](world)
	grid := NewSpatialGrid(100, 10)

	p := components.Position{X: 1, Y: 1}
	grid.Insert(mapper.NewEntity(&p), p.X, p.Y)
	grid.Clear()

	if got := grid.QueryRadiusInto(nil, 0, 0, 50, 0, posMap); len(got) != 0 {
		t.Errorf("after Clear: %d results", len(got))
	}
}

func TestSquarePointBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := SquarePoint(rng, 400)
		if p.X < -200 || p.X > 200 || p.Y < -200 || p.Y > 200 {
			t.Fatalf("point (%v, %v) outside field square", p.X, p.Y)
		}
	}
}

func TestMagnetPull(t *testing.T) {
	head := components.Position{}
	tests := []struct {
		name     string
		start    components.Position
		radius   float32
		wantMove bool
	}{
		{"inside radius", components.Position{X: 2}, 4, true},
		{"outside radius", components.Position{X: 5}, 4, false},
		{"on radius", components.Position{X: 4}, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			dist := Distance(p.X, p.Y, head.X, head.Y)
			MagnetPull(&p, head, dist, tt.radius, 40, 0.016)
			moved := p.X != tt.start.X
			if moved != tt.wantMove {
				t.Errorf("moved = %v, want %v", moved, tt.wantMove)
			}
			if moved && (p.X <= 0 || p.X >= tt.start.X) {
				t.Errorf("pulled to %v, want between head and start", p.X)
			}
		})
	}
}

func TestMagnetPullNeverOvershoots(t *testing.T) {
	p := components.Position{X: 0.5}
	MagnetPull(&p, components.Position{}, 0.5, 4, 40, 0.1) // factor 3.5 capped at 1
	if p.X != 0 {
		t.Errorf("pulled to %v, want head", p.X)
	}
}

func TestItemTemplate(t *testing.T) {
	cfg := &config.MustDefaults().Items
	food := ItemTemplate(components.KindFood, cfg)
	chest := ItemTemplate(components.KindChest, cfg)
	if food.LevelGain != 2 || food.CoinGain != 10 {
		t.Errorf("food = %+v", food)
	}
	if chest.LevelGain != 50 || chest.CoinGain != 200 {
		t.Errorf("chest = %+v", chest)
	}
}

func TestSpatialGridQueryLimit(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap[components.Position](world)
	grid := NewSpatialGrid(100, 10)

	for i := 0; i < 300; i++ {
		p := components.Position{X: 0.1, Y: 0.1}
		grid.Insert(mapper.NewEntity(&p), p.X, p.Y)
	}

	if got := grid.QueryRadiusInto(nil, 0, 0, 5, 0, posMap); len(got) != 300 {
		t.Errorf("unbounded query: %d results, want 300", len(got))
	}
	if got := grid.QueryRadiusInto(nil, 0, 0, 5, 40, posMap); len(got) != 40 {
		t.Errorf("limited query: %d results, want 40", len(got))
	}
	// The limit counts only results appended by this call
	prefix := make([]Neighbor, 10)
	if got := grid.QueryRadiusInto(prefix, 0, 0, 5, 40, posMap); len(got) != 50 {
		t.Errorf("limited query with prefix: %d results, want 50", len(got))
	}
}
