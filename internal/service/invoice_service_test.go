package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
)

func TestInvoiceNumberFormat(t *testing.T) {
	tests := []struct {
		year int
		seq  int
		want string
	}{
		{2026, 1, "INV-2026-0001"},
		{2026, 42, "INV-2026-0042"},
		{2027, 9999, "INV-2027-9999"},
		{2027, 10000, "INV-2027-10000"}, // sequence outgrows the pad, never truncates
	}

	for _, tt := range tests {
		got := fmt.Sprintf("INV-%d-%04d", tt.year, tt.seq)
		if got != tt.want {
			t.Errorf("number(%d, %d) = %s, want %s", tt.year, tt.seq, got, tt.want)
		}
	}
}

func TestResolveItemsSingleLineFallback(t *testing.T) {
	subtotal, items := resolveItems(&dto.CreateInvoiceRequest{Amount: 5000})

	if subtotal != 5000 {
		t.Errorf("subtotal = %v, want 5000", subtotal)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Description != "Goods/Services" || items[0].Quantity != 1 || items[0].Amount != 5000 {
		t.Errorf("fallback line item = %+v", items[0])
	}
}

func TestResolveItemsExplicitLines(t *testing.T) {
	req := &dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemDTO{
			{Description: "Design work", Quantity: 2, UnitPrice: 1500},
			{Description: "Hosting", Quantity: 1, UnitPrice: 499.99},
		},
	}

	subtotal, items := resolveItems(req)

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Amount != 3000 {
		t.Errorf("items[0].Amount = %v, want 3000", items[0].Amount)
	}
	if subtotal != 3499.99 {
		t.Errorf("subtotal = %v, want 3499.99", subtotal)
	}
}

func TestGstMath(t *testing.T) {
	// 18% on 5000 is the canonical invoice example: total 5900.00.
	subtotal := 5000.0
	gst := round2(subtotal * defaultGstRate / 100)
	if gst != 900 {
		t.Errorf("gst = %v, want 900", gst)
	}
	if total := round2(subtotal + gst); total != 5900 {
		t.Errorf("total = %v, want 5900", total)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{123.456, 123.46},
		{899.994, 899.99},
		{0, 0},
		{1234.5, 1234.5},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("ERROR: duplicate key value violates unique constraint \"idx_invoices_user_number\""), true},
		{errors.New("SQLSTATE 23505"), true},
		{errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		if got := isUniqueViolation(tt.err); got != tt.want {
			t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

// Concurrent number allocation through the keyed mutex must never hand out
// the same sequence twice for one user, while distinct users proceed
// independently.
func TestLockForSerializesPerUser(t *testing.T) {
	svc := &invoiceService{}
	userA := uuid.New()
	userB := uuid.New()

	if svc.lockFor(userA) != svc.lockFor(userA) {
		t.Fatal("same user must get the same mutex")
	}
	if svc.lockFor(userA) == svc.lockFor(userB) {
		t.Fatal("different users must get different mutexes")
	}

	const goroutines = 32
	var (
		wg   sync.WaitGroup
		next int
		seen = make(map[int]bool)
		mu   sync.Mutex
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			lock := svc.lockFor(userA)
			lock.Lock()
			defer lock.Unlock()
			// Simulates read-sequence-then-write under the user lock.
			seq := next
			next = seq + 1
			mu.Lock()
			if seen[seq] {
				t.Errorf("sequence %d allocated twice", seq)
			}
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if next != goroutines {
		t.Errorf("allocated %d sequences, want %d", next, goroutines)
	}
}
