package usecase

import (
	"errors"
	"sync"
)

// ErrInvalidStationID se retorna cuando el id de caja está vacío
var ErrInvalidStationID = errors.New("station id is required")

// RegisterFactory crea el caso de uso de una caja nueva
type RegisterFactory func(stationID string) *RegisterUseCase

type station struct {
	mu       sync.Mutex
	register *RegisterUseCase
}

// StationPool mantiene un RegisterUseCase por caja. Las llamadas de una misma
// caja se serializan; cajas distintas no comparten estado
type StationPool struct {
	factory  RegisterFactory
	mu       sync.Mutex
	stations map[string]*station
}

func NewStationPool(factory RegisterFactory) *StationPool {
	return &StationPool{
		factory:  factory,
		stations: make(map[string]*station),
	}
}

// With ejecuta fn con el caso de uso de la caja, creándolo si no existe
func (p *StationPool) With(stationID string, fn func(uc *RegisterUseCase) error) error {
	if stationID == "" {
		return ErrInvalidStationID
	}

	p.mu.Lock()
	st, ok := p.stations[stationID]
	if !ok {
		st = &station{register: p.factory(stationID)}
		p.stations[stationID] = st
	}
	p.mu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.register)
}

// Stations retorna los ids de caja conocidos
func (p *StationPool) Stations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.stations))
	for id := range p.stations {
		ids = append(ids, id)
	}
	return ids
}
