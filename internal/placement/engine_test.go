package placement

import (
	"errors"
	"sync"
	"testing"

	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/history"
	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canvas300 = geometry.Canvas{Width: 300, Height: 300}

func TestEngine_TryPlace_CenteredCircle(t *testing.T) {
	sampler := testutil.NewConstantSampler(0.5, 1)
	e := NewEngine(canvas300, model.DefaultDimensions(), sampler)
	e.SetRetryLimit(500)

	p, err := e.TryPlace(model.KindCircle, history.New())

	require.NoError(t, err)
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, model.Circle{X: 150, Y: 150, SizeMultiplier: 1, Color: model.RandomColor(0.5)}, p.Shape)
	assert.Equal(t, geometry.Rect{X: 125, Y: 125, Width: 50, Height: 50}, p.Bounds)
}

func TestEngine_TryPlace_FullCanvas(t *testing.T) {
	for _, kind := range model.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			h := history.New()
			h.Append(history.Entry{
				Shape:  model.Circle{X: 150, Y: 150, SizeMultiplier: 6},
				Bounds: geometry.Rect{X: 0, Y: 0, Width: 300, Height: 300},
			})

			e := NewEngine(canvas300, model.DefaultDimensions(), NewRandSampler(1))

			for _, limit := range []int{1, 50} {
				e.SetRetryLimit(limit)
				_, err := e.TryPlace(kind, h)
				assert.ErrorIs(t, err, ErrCanvasFull)
			}
			assert.Equal(t, 1, h.Len(), "失敗時に履歴は変更されない")
		})
	}
}

func TestEngine_TryPlace_ZeroRetryLimit(t *testing.T) {
	sampler := testutil.NewConstantSampler(0.5, 1)
	e := NewEngine(canvas300, model.DefaultDimensions(), sampler)
	e.SetRetryLimit(0)

	_, err := e.TryPlace(model.KindCircle, history.New())

	assert.ErrorIs(t, err, ErrCanvasFull)
	assert.Equal(t, 0, sampler.Calls())
}

func TestEngine_TryPlace_InvalidKind(t *testing.T) {
	sampler := testutil.NewConstantSampler(0.5, 1)
	e := NewEngine(canvas300, model.DefaultDimensions(), sampler)

	_, err := e.TryPlace(model.Kind("hexagon"), history.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidShapeKind))
	assert.False(t, errors.Is(err, ErrCanvasFull))
	assert.Contains(t, err.Error(), "hexagon")
	assert.Equal(t, 0, sampler.Calls(), "サンプリング前に失敗するべき")
}

func TestEngine_TryPlace_RetriesAfterCollision(t *testing.T) {
	h := history.New()
	h.Append(history.Entry{
		Shape:  model.Square{X: 150, Y: 150, SizeMultiplier: 1},
		Bounds: geometry.Rect{X: 140, Y: 140, Width: 20, Height: 20},
	})

	// 1回目: 中央 (150,150) で衝突、2回目: 左上 (25,25)
	sampler := testutil.NewSequenceSampler([]float64{0.5, 0.5, 0.3, 0, 0, 0.3}, []int{1})
	e := NewEngine(canvas300, model.DefaultDimensions(), sampler)

	p, err := e.TryPlace(model.KindCircle, h)

	require.NoError(t, err)
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50}, p.Bounds)
	assert.Equal(t, 1, h.Len(), "エンジンは履歴を変更しない")
}

func TestEngine_TryPlace_RejectsDuplicateBounds(t *testing.T) {
	h := history.New()
	h.Append(history.Entry{
		Shape:  model.Circle{X: 150, Y: 150, SizeMultiplier: 1},
		Bounds: geometry.Rect{X: 125, Y: 125, Width: 50, Height: 50},
	})

	sampler := testutil.NewConstantSampler(0.5, 1)
	e := NewEngine(canvas300, model.DefaultDimensions(), sampler)
	e.SetRetryLimit(10)

	_, err := e.TryPlace(model.KindCircle, h)

	assert.ErrorIs(t, err, ErrCanvasFull)
}

func TestEngine_TryPlace_RejectsRotatedOffCanvas(t *testing.T) {
	// 1回目: 左上で45度回転してはみ出す、2回目: 回転なし
	sampler := testutil.NewSequenceSampler([]float64{0, 0, 0.25, 0.1, 0, 0, 0, 0.1}, nil)
	e := NewEngine(canvas300, model.DefaultDimensions(), sampler)

	p, err := e.TryPlace(model.KindRectangle, history.New())

	require.NoError(t, err)
	assert.Equal(t, 2, p.Attempts)
	rect, ok := p.Shape.(model.Rectangle)
	require.True(t, ok)
	assert.Equal(t, 0.0, rect.Rotation)
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 20, Height: 100}, p.Bounds)
}

func TestEngine_TryPlace_ShapeLargerThanCanvas(t *testing.T) {
	small := geometry.Canvas{Width: 40, Height: 40}
	e := NewEngine(small, model.DefaultDimensions(), NewRandSampler(3))
	e.SetRetryLimit(20)

	_, err := e.TryPlace(model.KindCircle, history.New())

	assert.ErrorIs(t, err, ErrCanvasFull)
}

func TestEngine_TryPlace_NeverOverlapsOrLeavesCanvas(t *testing.T) {
	sets := map[string][]model.Kind{
		"legacy":  {model.KindRectangle, model.KindSemicircle},
		"regular": {model.KindSquare, model.KindCircle, model.KindTriangle},
	}

	for name, kinds := range sets {
		t.Run(name, func(t *testing.T) {
			h := history.New()
			e := NewEngine(canvas300, model.DefaultDimensions(), NewRandSampler(42))
			e.SetRetryLimit(200)

			for i := 0; i < 60; i++ {
				p, err := e.TryPlace(kinds[i%len(kinds)], h)
				if errors.Is(err, ErrCanvasFull) {
					continue
				}
				require.NoError(t, err)

				assert.False(t, geometry.IsOffCanvas(p.Bounds, canvas300), "キャンバス外: %+v", p.Bounds)
				assert.False(t, h.Collides(p.Bounds), "既存の図形と重なっている: %+v", p.Bounds)
				assert.Equal(t, p.Shape.Bounds(e.Dimensions()), p.Bounds)

				h.Append(history.Entry{Shape: p.Shape, Bounds: p.Bounds})
			}

			rects := h.Rectangles()
			require.NotEmpty(t, rects)
			for i := 0; i < len(rects); i++ {
				for j := i + 1; j < len(rects); j++ {
					assert.False(t, geometry.Intersects(rects[i], rects[j]), "配置 %d と %d が重なっている", i, j)
					assert.NotEqual(t, rects[i], rects[j])
				}
			}
		})
	}
}

func TestEngine_TryPlace_DeterministicForSeed(t *testing.T) {
	run := func() []Placement {
		h := history.New()
		e := NewEngine(canvas300, model.DefaultDimensions(), NewRandSampler(7))
		out := make([]Placement, 0)
		for i := 0; i < 10; i++ {
			p, err := e.TryPlace(model.KindTriangle, h)
			if err != nil {
				continue
			}
			h.Append(history.Entry{Shape: p.Shape, Bounds: p.Bounds})
			out = append(out, p)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestEngine_Accessors(t *testing.T) {
	e := NewEngine(canvas300, model.DefaultDimensions(), NewRandSampler(1))

	assert.Equal(t, DefaultRetryLimit, e.RetryLimit())
	assert.Equal(t, canvas300, e.Canvas())
	assert.Equal(t, model.DefaultDimensions(), e.Dimensions())
}

func TestRandSampler_Choose(t *testing.T) {
	s := NewRandSampler(99)

	for i := 0; i < 100; i++ {
		m := s.Choose(model.SizeMultipliers)
		assert.Contains(t, model.SizeMultipliers, m)

		f := s.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestEngine_SetRetryLimit_Concurrent(t *testing.T) {
	e := NewEngine(canvas300, model.DefaultDimensions(), NewRandSampler(5))
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(limit int) {
			defer wg.Done()
			e.SetRetryLimit(limit)
		}(i)
		go func() {
			defer wg.Done()
			p, err := e.TryPlace(model.KindCircle, history.New())
			if errors.Is(err, ErrCanvasFull) {
				assert.Equal(t, 0, p.Attempts)
				return
			}
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	e.SetRetryLimit(7)
	assert.Equal(t, 7, e.RetryLimit())
}

func TestEngine_TryPlace_CanvasFullReportsAttempts(t *testing.T) {
	e := NewEngine(canvas300, model.DefaultDimensions(), testutil.NewConstantSampler(0.5, 1))
	e.SetRetryLimit(4)
	h := history.New()

	first, err := e.TryPlace(model.KindCircle, h)
	require.NoError(t, err)
	h.Append(history.Entry{Shape: first.Shape, Bounds: first.Bounds})

	p, err := e.TryPlace(model.KindCircle, h)

	assert.ErrorIs(t, err, ErrCanvasFull)
	assert.Equal(t, 4, p.Attempts)
	assert.Nil(t, p.Shape)
}

func TestEngine_TryPlace_DrawsPerKind(t *testing.T) {
	tests := []struct {
		name        string
		kind        model.Kind
		wantFloats  int
		wantChoices int
	}{
		{name: "正常系: rectangle は位置・回転・色", kind: model.KindRectangle, wantFloats: 4, wantChoices: 0},
		{name: "正常系: semicircle は位置・回転・色", kind: model.KindSemicircle, wantFloats: 4, wantChoices: 0},
		{name: "正常系: circle は回転しない", kind: model.KindCircle, wantFloats: 3, wantChoices: 1},
		{name: "正常系: square はサイズと回転", kind: model.KindSquare, wantFloats: 4, wantChoices: 1},
		{name: "正常系: triangle はサイズと回転", kind: model.KindTriangle, wantFloats: 4, wantChoices: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := testutil.NewConstantSampler(0.5, 1)
			e := NewEngine(canvas300, model.DefaultDimensions(), sampler)

			p, err := e.TryPlace(tt.kind, history.New())

			require.NoError(t, err)
			assert.Equal(t, tt.kind, p.Shape.Kind())
			assert.Equal(t, 1, p.Attempts)
			assert.Equal(t, tt.wantFloats, sampler.FloatCalls)
			assert.Equal(t, tt.wantChoices, sampler.ChooseCalls)
		})
	}
}
