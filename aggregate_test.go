package robostat

import (
	"errors"
	"slices"
	"testing"
)

func TestFold_Scenario(t *testing.T) {
	records := []Record{
		NewBuy(2, "TICK_A", Q(10), EUR(5), EUR(50)),
		NewSell(3, "TICK_A", Q(4), EUR(24)),
		NewDividend(4, "TICK_A", EUR(1)),
		NewCashTopUp(5, EUR(100)),
	}
	agg := mustFold(t, records)

	if len(agg.Positions) != 1 {
		t.Fatalf("Positions = %v, want a single position", agg.Positions)
	}
	pos, ok := agg.Position("TICK_A")
	if !ok {
		t.Fatalf("Position(TICK_A) not found")
	}
	if !pos.Quantity.Equal(Q(6)) {
		t.Errorf("TICK_A quantity = %v, want 6", pos.Quantity)
	}
	if !pos.AveragePrice.Equal(EUR(5)) {
		t.Errorf("TICK_A average price = %v, want 5 EUR", pos.AveragePrice)
	}

	s := agg.Summary
	if !s.Injected.Equal(EUR(100)) {
		t.Errorf("Injected = %v, want 100", s.Injected)
	}
	if !s.Sold.Equal(EUR(24)) {
		t.Errorf("Sold = %v, want 24", s.Sold)
	}
	if !s.Dividends.Equal(EUR(1)) {
		t.Errorf("Dividends = %v, want 1", s.Dividends)
	}
	if !s.Fees.IsZero() {
		t.Errorf("Fees = %v, want 0", s.Fees)
	}
	if !s.NetContributions().Equal(EUR(76)) {
		t.Errorf("NetContributions() = %v, want 76", s.NetContributions())
	}
}

func TestFold_AveragePriceIgnoresSells(t *testing.T) {
	records := []Record{
		NewBuy(2, "TICK_A", Q(10), EUR(10), EUR(100)),
		NewBuy(3, "TICK_A", Q(10), EUR(20), EUR(200)),
		NewSell(4, "TICK_A", Q(15), EUR(450)),
	}
	agg := mustFold(t, records)
	pos, ok := agg.Position("TICK_A")
	if !ok {
		t.Fatalf("Position(TICK_A) not found")
	}
	if !pos.Quantity.Equal(Q(5)) {
		t.Errorf("quantity = %v, want 5", pos.Quantity)
	}
	if !pos.AveragePrice.Equal(EUR(15)) {
		t.Errorf("average price = %v, want 15", pos.AveragePrice)
	}
}

func TestFold_LiquidatedTickersAreOmitted(t *testing.T) {
	testCases := []struct {
		name string
		sold float64
	}{
		{"sold to zero", 3},
		{"oversold", 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := mustFold(t, []Record{
				NewBuy(2, "TICK_A", Q(3), EUR(1), EUR(3)),
				NewSell(3, "TICK_A", Q(tc.sold), EUR(4)),
			})
			if len(agg.Positions) != 0 {
				t.Errorf("Positions = %v, want none", agg.Positions)
			}
			if !agg.Summary.Sold.Equal(EUR(4)) {
				t.Errorf("Sold = %v, want 4", agg.Summary.Sold)
			}
		})
	}
}

func TestFold_CashTopUpOnlyInjects(t *testing.T) {
	agg := mustFold(t, []Record{
		NewCashTopUp(2, EUR(100)),
		NewCashTopUp(3, EUR(50.5)),
	})
	if len(agg.Positions) != 0 {
		t.Errorf("Positions = %v, want none", agg.Positions)
	}
	if _, ok := agg.Position("EUR"); ok {
		t.Errorf("cash top-up created a EUR position")
	}
	if !agg.Summary.Injected.Equal(EUR(150.5)) {
		t.Errorf("Injected = %v, want 150.5", agg.Summary.Injected)
	}
}

func TestFold_FeesAreMagnitudes(t *testing.T) {
	agg := mustFold(t, []Record{
		NewFee(2, EUR(-0.12)),
		NewFee(3, EUR(0.08)),
	})
	if !agg.Summary.Fees.Equal(EUR(0.2)) {
		t.Errorf("Fees = %v, want 0.20", agg.Summary.Fees)
	}
}

func TestFold_SellWithoutBuy(t *testing.T) {
	_, err := FoldAll([]Record{
		NewBuy(2, "TICK_A", Q(1), EUR(1), EUR(1)),
		NewSell(3, "TICK_B", Q(2), EUR(10)),
	})
	var merr *MalformedInputError
	if !errors.As(err, &merr) {
		t.Fatalf("FoldAll() error = %v, want a *MalformedInputError", err)
	}
	if merr.Ticker != "TICK_B" {
		t.Errorf("error ticker = %q, want TICK_B", merr.Ticker)
	}
}

func TestFold_FirstEncounterOrder(t *testing.T) {
	agg := mustFold(t, []Record{
		NewDividend(2, "TICK_Z", EUR(1)),
		NewBuy(3, "TICK_C", Q(1), EUR(1), EUR(1)),
		NewBuy(4, "TICK_A", Q(1), EUR(1), EUR(1)),
		NewBuy(5, "TICK_B", Q(1), EUR(1), EUR(1)),
		NewBuy(6, "TICK_C", Q(1), EUR(1), EUR(1)),
	})
	want := []string{"TICK_C", "TICK_A", "TICK_B"}
	if got := agg.Tickers(); !slices.Equal(got, want) {
		t.Errorf("Tickers() = %v, want %v", got, want)
	}
}

func TestFold_ConservationOfShares(t *testing.T) {
	records := []Record{
		NewBuy(2, "TICK_A", Q(10.5), EUR(2), EUR(21)),
		NewBuy(3, "TICK_B", Q(3), EUR(7), EUR(21)),
		NewSell(4, "TICK_A", Q(0.25), EUR(1)),
		NewBuy(5, "TICK_C", Q(1), EUR(1), EUR(1)),
		NewSell(6, "TICK_B", Q(1.5), EUR(12)),
		NewBuy(7, "TICK_A", Q(0.125), EUR(8), EUR(1)),
		NewSell(8, "TICK_C", Q(1), EUR(2)),
	}
	agg := mustFold(t, records)

	bought := map[string]Quantity{}
	sold := map[string]Quantity{}
	for _, rec := range records {
		switch v := rec.(type) {
		case Buy:
			bought[v.Ticker] = bought[v.Ticker].Add(v.Quantity)
		case Sell:
			sold[v.Ticker] = sold[v.Ticker].Add(v.Quantity)
		}
	}

	for _, pos := range agg.Positions {
		want := bought[pos.Ticker].Sub(sold[pos.Ticker])
		if !pos.Quantity.Equal(want) {
			t.Errorf("%s remaining = %v, want %v", pos.Ticker, pos.Quantity, want)
		}
	}
	if _, ok := agg.Position("TICK_C"); ok {
		t.Errorf("TICK_C is fully sold and must not be a position")
	}
	if len(agg.Positions) != 2 {
		t.Errorf("Positions = %v, want TICK_A and TICK_B", agg.Positions)
	}
}

func TestFold_BuyOrderInvariance(t *testing.T) {
	buys := []Record{
		NewBuy(2, "TICK_A", Q(3), EUR(10), EUR(30)),
		NewBuy(3, "TICK_A", Q(7), EUR(11.3), EUR(79.1)),
		NewBuy(4, "TICK_A", Q(0.333), EUR(12), EUR(3.996)),
	}
	reversed := slices.Clone(buys)
	slices.Reverse(reversed)
	forward := mustFold(t, buys)
	backward := mustFold(t, reversed)

	f, _ := forward.Position("TICK_A")
	b, _ := backward.Position("TICK_A")
	if !f.AveragePrice.Equal(b.AveragePrice) {
		t.Errorf("average price depends on order: %v != %v", f.AveragePrice.Decimal(), b.AveragePrice.Decimal())
	}
}

func TestFold_Idempotent(t *testing.T) {
	records := mustExtract(t, statement(
		"2023-01-02T10:00:00Z,,CASH TOP-UP,,,EUR 100,EUR,1",
		"2023-01-03T10:00:00Z,TICK_A,BUY - MARKET,3,EUR 33.3333,EUR 100,EUR,1",
		"2023-01-03T10:00:00Z,TICK_B,BUY - MARKET,1,EUR 7,EUR 7,EUR,1",
		"2023-02-03T10:00:00Z,TICK_A,SELL - MARKET,1,EUR 40,EUR 40,EUR,1",
		"2023-04-01T10:00:00Z,,ROBO MANAGEMENT FEE,,,-€0.12,EUR,1",
	))
	first := mustFold(t, records)
	second := mustFold(t, records)

	if !slices.EqualFunc(first.Positions, second.Positions, func(a, b Position) bool {
		return a.Ticker == b.Ticker && a.Quantity.Equal(b.Quantity) && a.AveragePrice.Equal(b.AveragePrice)
	}) {
		t.Errorf("positions differ between runs: %v != %v", first.Positions, second.Positions)
	}
	s1, s2 := first.Summary, second.Summary
	if !s1.Injected.Equal(s2.Injected) || !s1.Sold.Equal(s2.Sold) || !s1.Dividends.Equal(s2.Dividends) || !s1.Fees.Equal(s2.Fees) {
		t.Errorf("summary differs between runs: %+v != %+v", s1, s2)
	}
}
