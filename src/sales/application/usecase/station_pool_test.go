package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
)

func TestStationPool_IsolatesStations(t *testing.T) {
	ctx := context.Background()
	created := 0
	pool := NewStationPool(func(stationID string) *RegisterUseCase {
		created++
		return newRegisterFixture().uc
	})

	pool.With("a", func(uc *RegisterUseCase) error {
		uc.StartSale(ctx)
		_, err := uc.EnterItem(ctx, 101, 1)
		return err
	})
	pool.With("b", func(uc *RegisterUseCase) error {
		uc.StartSale(ctx)
		return nil
	})

	var totalA, totalB string
	pool.With("a", func(uc *RegisterUseCase) error {
		sale, err := uc.CurrentSale()
		totalA = sale.RunningTotal.String()
		return err
	})
	pool.With("b", func(uc *RegisterUseCase) error {
		sale, err := uc.CurrentSale()
		totalB = sale.RunningTotal.String()
		return err
	})

	if totalA != "10.00" || totalB != "0.00" {
		t.Errorf("expected independent totals, got a=%s b=%s", totalA, totalB)
	}
	if created != 2 {
		t.Errorf("expected 2 registers, got %d", created)
	}

	ids := pool.Stations()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("unexpected stations %v", ids)
	}
}

func TestStationPool_RejectsEmptyID(t *testing.T) {
	pool := NewStationPool(func(string) *RegisterUseCase { return newRegisterFixture().uc })
	err := pool.With("", func(*RegisterUseCase) error { return nil })
	if !errors.Is(err, ErrInvalidStationID) {
		t.Errorf("expected ErrInvalidStationID, got %v", err)
	}
}

func TestStationPool_SerializesSameStation(t *testing.T) {
	ctx := context.Background()
	pool := NewStationPool(func(string) *RegisterUseCase { return newRegisterFixture().uc })
	pool.With("s", func(uc *RegisterUseCase) error {
		uc.StartSale(ctx)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.With("s", func(uc *RegisterUseCase) error {
				_, err := uc.EnterItem(ctx, 101, 1)
				return err
			})
		}()
	}
	wg.Wait()

	pool.With("s", func(uc *RegisterUseCase) error {
		sale, _ := uc.CurrentSale()
		if len(sale.Items) != 20 {
			t.Errorf("expected 20 items, got %d", len(sale.Items))
		}
		return nil
	})
}
