package geom

import (
	"errors"
	"slices"
	"testing"
)

type textID string

func (t textID) String() string { return string(t) }

func TestSortInstances_TextOrder(t *testing.T) {
	got := SortInstances([]textID{"300", "10", "2"})
	want := []textID{"10", "2", "300"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectInstance_StableAcrossInputOrder(t *testing.T) {
	orders := [][]textID{
		{"300", "10", "2"},
		{"2", "300", "10"},
		{"10", "2", "300"},
	}
	for nth, want := range []textID{"10", "2", "300"} {
		for _, ids := range orders {
			got, err := SelectInstance(ids, nth)
			if err != nil {
				t.Fatalf("SelectInstance(%v, %d): %v", ids, nth, err)
			}
			if got != want {
				t.Errorf("SelectInstance(%v, %d) = %s, want %s", ids, nth, got, want)
			}
		}
	}

	if _, err := SelectInstance([]textID{"1"}, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFilterWindows(t *testing.T) {
	wins := []SizedWindow[textID]{
		{ID: "1", Bounds: Rect{Width: 800, Height: 600}},
		{ID: "2", Bounds: Rect{Width: 16, Height: 16}},
		{
			ID:     "3",
			Bounds: Rect{Width: 1, Height: 1},
			Children: []SizedWindow[textID]{
				{ID: "4", Bounds: Rect{Width: 1024, Height: 768}},
				{ID: "5", Bounds: Rect{Width: 199, Height: 900}},
				{
					ID:     "6",
					Bounds: Rect{Width: 10, Height: 10},
					Children: []SizedWindow[textID]{
						{ID: "7", Bounds: Rect{Width: 500, Height: 500}},
					},
				},
			},
		},
		{ID: "8", Bounds: Rect{Width: 200, Height: 200}},
	}

	got := FilterWindows(wins, DefaultMinWindowSize)
	want := []textID{"1", "4", "8"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
