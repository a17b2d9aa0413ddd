package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	engine "github.com/marjapussi/marjapussi/engine"
)

func TestMatchAction(t *testing.T) {
	provoke := []engine.Action{engine.NewProvoke(1, 0), engine.NewProvoke(1, 120), engine.NewProvoke(1, 125)}

	a, ok := matchAction("2", provoke)
	assert.True(t, ok)
	assert.Equal(t, provoke[1], a, "small numbers select by position")

	a, ok = matchAction("125", provoke)
	assert.True(t, ok)
	assert.Equal(t, provoke[2], a, "values select the provoking step")

	_, ok = matchAction("130", provoke)
	assert.False(t, ok)

	talk := []engine.Action{
		engine.NewQuestion(0, engine.PronounYours, engine.NoSuit),
		engine.NewQuestion(0, engine.PronounOur, engine.Rot),
		engine.NewPlay(0, engine.MustParseCard("r-A")),
	}
	a, ok = matchAction("R-A", talk)
	assert.True(t, ok)
	assert.Equal(t, talk[2], a)

	a, ok = matchAction(payload(talk[1]), talk)
	assert.True(t, ok)
	assert.Equal(t, talk[1], a)

	_, ok = matchAction("s-A", talk)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "fold", describe(engine.NewProvoke(2, 0)))
	assert.Equal(t, "keep the value", describe(engine.NewRaise(2, 0)))
	assert.Equal(t, "140", describe(engine.NewRaise(2, 140)))
	assert.Equal(t, "r-A", payload(engine.NewPlay(3, engine.MustParseCard("r-A"))))
}
