package multistep_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/multistep"
)

const (
	stateA = multistep.State("a")
	stateB = multistep.State("b")
	stateC = multistep.State("c")
)

func TestFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fires transitions in order", func(t *testing.T) {
		t.Parallel()
		flow, err := multistep.NewFlow(stateA,
			multistep.Transition{From: stateA, To: stateB, Event: multistep.EventNext},
			multistep.Transition{From: stateB, To: stateA, Event: multistep.EventBack},
		)
		require.NoError(t, err)
		assert.Equal(t, stateA, flow.Current())

		to, err := flow.Fire(ctx, multistep.EventNext)
		require.NoError(t, err)
		assert.Equal(t, stateB, to)
		assert.Equal(t, stateB, flow.Current())

		_, err = flow.Fire(ctx, multistep.EventBack)
		require.NoError(t, err)
		assert.Equal(t, stateA, flow.Current())
	})

	t.Run("reports missing transitions", func(t *testing.T) {
		t.Parallel()
		flow, err := multistep.NewFlow(stateA)
		require.NoError(t, err)

		to, err := flow.Fire(ctx, multistep.EventNext)
		assert.Equal(t, stateA, to)
		assert.ErrorIs(t, err, multistep.ErrNoTransition)
		assert.True(t, multistep.IsTransitionError(err))

		var te *multistep.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, stateA, te.From)
		assert.Equal(t, multistep.EventNext, te.Event)
	})

	t.Run("guards reject with their reason", func(t *testing.T) {
		t.Parallel()
		errClosed := errors.New("gate closed")
		flow, err := multistep.NewFlow(stateA, multistep.Transition{
			From:  stateA,
			To:    stateB,
			Event: multistep.EventNext,
			Guards: []multistep.Guard{func(context.Context, multistep.State, multistep.Event) error {
				return errClosed
			}},
		})
		require.NoError(t, err)

		assert.False(t, flow.CanFire(ctx, multistep.EventNext))
		_, err = flow.Fire(ctx, multistep.EventNext)
		assert.ErrorIs(t, err, multistep.ErrTransitionRejected)
		assert.ErrorIs(t, err, errClosed)
		assert.Equal(t, stateA, flow.Current())
	})

	t.Run("first passing transition wins", func(t *testing.T) {
		t.Parallel()
		deny := func(context.Context, multistep.State, multistep.Event) error { return errors.New("no") }
		flow, err := multistep.NewFlow(stateA,
			multistep.Transition{From: stateA, To: stateB, Event: multistep.EventNext, Guards: []multistep.Guard{deny}},
			multistep.Transition{From: stateA, To: stateC, Event: multistep.EventNext},
		)
		require.NoError(t, err)

		assert.True(t, flow.CanFire(ctx, multistep.EventNext))
		to, err := flow.Fire(ctx, multistep.EventNext)
		require.NoError(t, err)
		assert.Equal(t, stateC, to)
	})

	t.Run("actions run before the state changes and can abort", func(t *testing.T) {
		t.Parallel()
		var seen []multistep.State
		errBoom := errors.New("boom")
		flow, err := multistep.NewFlow(stateA,
			multistep.Transition{
				From:  stateA,
				To:    stateB,
				Event: multistep.EventNext,
				Actions: []multistep.Action{func(_ context.Context, from, to multistep.State, _ multistep.Event) error {
					seen = append(seen, from, to)
					return nil
				}},
			},
			multistep.Transition{
				From:  stateB,
				To:    stateC,
				Event: multistep.EventNext,
				Actions: []multistep.Action{func(context.Context, multistep.State, multistep.State, multistep.Event) error {
					return errBoom
				}},
			},
		)
		require.NoError(t, err)

		_, err = flow.Fire(ctx, multistep.EventNext)
		require.NoError(t, err)
		assert.Equal(t, []multistep.State{stateA, stateB}, seen)

		_, err = flow.Fire(ctx, multistep.EventNext)
		assert.ErrorIs(t, err, multistep.ErrActionFailed)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, stateB, flow.Current())
	})

	t.Run("restore and reset", func(t *testing.T) {
		t.Parallel()
		flow, err := multistep.NewFlow(stateA,
			multistep.Transition{From: stateA, To: stateB, Event: multistep.EventNext},
		)
		require.NoError(t, err)

		require.NoError(t, flow.Restore(stateB))
		assert.Equal(t, stateB, flow.Current())
		assert.ErrorIs(t, flow.Restore("zzz"), multistep.ErrUnknownState)

		flow.Reset()
		assert.Equal(t, stateA, flow.Current())
	})

	t.Run("rejects incomplete transitions", func(t *testing.T) {
		t.Parallel()
		_, err := multistep.NewFlow(stateA, multistep.Transition{From: stateA, Event: multistep.EventNext})
		assert.ErrorIs(t, err, multistep.ErrInvalidTransition)

		_, err = multistep.NewFlow("")
		assert.ErrorIs(t, err, multistep.ErrInvalidTransition)
	})
}

func TestEvent_Target(t *testing.T) {
	step, ok := multistep.GoTo("contact").Target()
	assert.True(t, ok)
	assert.Equal(t, "contact", step)

	_, ok = multistep.EventNext.Target()
	assert.False(t, ok)
}
