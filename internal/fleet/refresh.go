package fleet

import (
	"sync"

	"github.com/motovision/motovision/internal/api"
)

// LoadMotos runs one vehicle load against the state, honoring the
// most-recently-initiated rule.
func LoadMotos(c *api.Client, s *ListState[api.Moto]) error {
	token := s.Begin()
	motos, err := c.ListMotos()
	s.Apply(token, motos, err)
	return err
}

// LoadPatios runs one yard load against the state.
func LoadPatios(c *api.Client, s *ListState[api.Patio]) error {
	token := s.Begin()
	patios, err := c.ListPatios()
	s.Apply(token, patios, err)
	return err
}

// LoadBoth issues the two entity loads concurrently and waits for both.
// Each list keeps its own loading and error state; one failing never blocks
// the other. Used on screen entry and after a yard mutation, where vehicle
// grouping depends on the refreshed yard names.
func LoadBoth(c *api.Client, motos *ListState[api.Moto], patios *ListState[api.Patio]) (motoErr, patioErr error) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		motoErr = LoadMotos(c, motos)
	}()
	go func() {
		defer wg.Done()
		patioErr = LoadPatios(c, patios)
	}()
	wg.Wait()
	return motoErr, patioErr
}

// OrphanedMotos returns the vehicles that would lose their yard reference if
// the named patio were deleted. Deletion is not blocked; the caller warns
// with the affected plates before confirming.
func OrphanedMotos(motos []api.Moto, nomePatio string) []api.Moto {
	var orphans []api.Moto
	for _, m := range motos {
		if m.NomePatio == nomePatio {
			orphans = append(orphans, m)
		}
	}
	return orphans
}
