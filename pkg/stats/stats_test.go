package stats

import (
	"testing"

	"crbklasemen/models"
)

func TestSummarizeCountsOnlyActive(t *testing.T) {
	klasemen := []models.Klasemen{
		{Keterangan: models.KeteranganAktif, Winloss: 10, Turnover: 100},
		{Keterangan: models.KeteranganAktif, Winloss: -5, Turnover: 50},
		{Keterangan: models.KeteranganTidakAktif, Winloss: 100, Turnover: 1000},
		{Keterangan: models.KeteranganExpired, Winloss: 7, Turnover: 70},
	}
	hadiah := []models.Hadiah{{Visible: true}, {Visible: false}, {Visible: true}}

	s := Summarize(klasemen, hadiah)
	if s.TotalWinners != 2 {
		t.Fatalf("expected 2 active entries got %d", s.TotalWinners)
	}
	if s.TotalWinloss != 5 {
		t.Fatalf("expected winloss 5 got %v", s.TotalWinloss)
	}
	if s.TotalTurnover != 150 {
		t.Fatalf("expected turnover 150 got %v", s.TotalTurnover)
	}
	if s.TotalPrizes != 2 {
		t.Fatalf("expected 2 visible prizes got %d", s.TotalPrizes)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.TotalWinners != 0 || s.TotalPrizes != 0 || s.TotalWinlossText != "0" {
		t.Fatalf("unexpected empty summary %+v", s)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		1234567: "1.234.567",
		-35000:  "-35.000",
		999:     "999",
		1234.5:  "1.234,50",
		0:       "0",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v) = %q want %q", in, got, want)
		}
	}
}
