package scroll

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	swaps []int
	navs  []int
}

func (r *recorder) SwapObject(i int) { r.swaps = append(r.swaps, i) }
func (r *recorder) NavigateTo(i int) { r.navs = append(r.navs, i) }

var (
	down = WheelEvent{DeltaY: 100}
	up   = WheelEvent{DeltaY: -100}
)

func newController(t *testing.T, sections int) (*Controller, *recorder) {
	t.Helper()
	log, _ := test.NewNullLogger()
	rec := &recorder{}
	return NewController(3, sections, rec, rec, log), rec
}

func TestThreeForwardSteps(t *testing.T) {
	c, rec := newController(t, 4)

	assert.Equal(t, Transition{Kind: Swap, Index: 1}, c.Handle(down))
	assert.Equal(t, Transition{Kind: Swap, Index: 2}, c.Handle(down))
	assert.False(t, c.State().AnimationDone())

	assert.Equal(t, Transition{Kind: Navigate, Index: 1}, c.Handle(down))

	st := c.State()
	assert.Equal(t, 3, st.ScrollCount)
	assert.True(t, st.AnimationDone())
	assert.Equal(t, 2, st.ObjectIndex, "third step navigates instead of swapping")
	assert.Equal(t, []int{1, 2}, rec.swaps)
	assert.Equal(t, []int{1}, rec.navs)
}

func TestBackwardAfterLatch(t *testing.T) {
	c, rec := newController(t, 4)
	for i := 0; i < 3; i++ {
		c.Handle(down)
	}

	tr := c.Handle(up)
	assert.Equal(t, Transition{Kind: Navigate, Index: 2}, tr)
	assert.Equal(t, 2, c.State().ScrollCount)
	assert.Equal(t, []int{1, 2}, rec.navs)
}

func TestBackwardIgnoredWhileCycling(t *testing.T) {
	c, rec := newController(t, 4)
	c.Handle(down)

	assert.Equal(t, Transition{}, c.Handle(up))
	assert.Equal(t, Transition{}, c.Handle(WheelEvent{DeltaY: 0}), "zero delta counts as backward")
	assert.Equal(t, 1, c.State().ScrollCount)
	assert.Empty(t, rec.navs)
}

func TestObjectIndexRoundRobin(t *testing.T) {
	log, _ := test.NewNullLogger()
	rec := &recorder{}
	// With no sections the stored count never passes zero, so the controller keeps cycling.
	c := NewController(3, 0, rec, rec, log)
	for i := 0; i < 7; i++ {
		c.Handle(down)
	}
	assert.Equal(t, []int{1, 2, 0, 1, 2, 0, 1}, rec.swaps)
	assert.Equal(t, Cycling, c.State().Phase)
}

func TestLatchNeverResets(t *testing.T) {
	c, _ := newController(t, 4)
	for i := 0; i < 3; i++ {
		c.Handle(down)
	}
	for i := 0; i < 10; i++ {
		c.Handle(up)
		require.Equal(t, Scrolling, c.State().Phase)
	}
	for i := 0; i < 10; i++ {
		c.Handle(down)
		require.Equal(t, Scrolling, c.State().Phase)
	}
}

func TestScrollCountBounds(t *testing.T) {
	c, rec := newController(t, 4)
	seq := []WheelEvent{down, down, down, down, down, down, down, down, up, up, up, up, up, up, up, up, down, down}
	for _, ev := range seq {
		c.Handle(ev)
		st := c.State()
		require.GreaterOrEqual(t, st.ScrollCount, 0)
		require.LessOrEqual(t, st.ScrollCount, 4)
		require.GreaterOrEqual(t, st.ObjectIndex, 0)
		require.Less(t, st.ObjectIndex, 3)
	}
	for _, i := range rec.navs {
		assert.GreaterOrEqual(t, i, 0)
	}
}

func TestForwardPastEndKeepsNavigatingToLastReachable(t *testing.T) {
	c, rec := newController(t, 4)
	for i := 0; i < 6; i++ {
		c.Handle(down)
	}
	// counts 3,4,5 navigate to 1,2,3; afterwards the count is clamped to 4, so each
	// further forward step re-targets section 3.
	assert.Equal(t, []int{1, 2, 3, 3}, rec.navs)
	assert.Equal(t, 4, c.State().ScrollCount)

	c.Handle(up)
	assert.Equal(t, 3, rec.navs[len(rec.navs)-1])
	assert.Equal(t, 3, c.State().ScrollCount)
}

func TestBackwardAtZeroIsNoop(t *testing.T) {
	c, rec := newController(t, 4)
	for i := 0; i < 3; i++ {
		c.Handle(down)
	}
	for i := 0; i < 5; i++ {
		c.Handle(up)
	}
	assert.Equal(t, 0, c.State().ScrollCount)
	assert.Equal(t, []int{1, 2, 1, 0}, rec.navs)

	// Back to forward: the latch holds, so counts 1 and 2 are silent.
	assert.Equal(t, Transition{}, c.Handle(down))
	assert.Equal(t, Transition{}, c.Handle(down))
	assert.Equal(t, Transition{Kind: Navigate, Index: 1}, c.Handle(down))
	assert.Equal(t, []int{1, 2}, rec.swaps)
}

func TestNilCollaborators(t *testing.T) {
	log, _ := test.NewNullLogger()
	c := NewController(0, 2, nil, nil, log)
	assert.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			c.Handle(down)
			c.Handle(up)
		}
	})
}

func TestPhaseAndKindStrings(t *testing.T) {
	assert.Equal(t, "cycling", Cycling.String())
	assert.Equal(t, "scrolling", Scrolling.String())
	assert.Equal(t, "navigate", Navigate.String())
	assert.Equal(t, "phase(7)", Phase(7).String())
}
