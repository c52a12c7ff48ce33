package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

func TestBundle_SetOnce(t *testing.T) {
	b := NewBundle(pokeapi.ResourcePokemon)

	require.NoError(t, b.Add(&pokeapi.Pokemon{ID: 151, Name: "mew"}))
	err := b.Add(&pokeapi.Pokemon{ID: 25, Name: "pikachu"})
	require.ErrorIs(t, err, ErrSetOnce)

	p, err := One[*pokeapi.Pokemon](b)
	require.NoError(t, err)
	assert.Equal(t, "mew", p.Name)
}

func TestBundle_SingleValuedReplaces(t *testing.T) {
	b := NewBundle()
	require.NoError(t, b.Add(&pokeapi.Version{ID: 1, Name: "red"}))
	require.NoError(t, b.Add(&pokeapi.Version{ID: 2, Name: "blue"}))

	v, err := One[*pokeapi.Version](b)
	require.NoError(t, err)
	assert.Equal(t, "blue", v.Name)
	assert.Equal(t, 1, b.Count(pokeapi.ResourceVersion))
}

func TestBundle_TypesInArrivalOrder(t *testing.T) {
	b := NewBundle()
	require.NoError(t, b.Add(&pokeapi.Version{ID: 1, Name: "red"}))
	require.NoError(t, b.Add(&pokeapi.Move{ID: 85, Name: "thunderbolt"}))
	require.NoError(t, b.Add(&pokeapi.Pokemon{ID: 151, Name: "mew"}))
	require.NoError(t, b.Add(&pokeapi.Move{ID: 94, Name: "psychic"}))

	assert.Equal(t, []pokeapi.ResourceType{
		pokeapi.ResourceVersion,
		pokeapi.ResourceMove,
		pokeapi.ResourcePokemon,
	}, b.Types())
	assert.True(t, b.Has(pokeapi.ResourceMove, pokeapi.ResourcePokemon))
	assert.False(t, b.Has(pokeapi.ResourceSpecies))
}

func TestOne_Missing(t *testing.T) {
	_, err := One[*pokeapi.Species](NewBundle())
	require.ErrorIs(t, err, ErrMissing)
	assert.Empty(t, All[*pokeapi.Move](NewBundle()))
}
