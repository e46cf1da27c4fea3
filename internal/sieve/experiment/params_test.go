package experiment

import (
	"errors"
	"testing"
)

// TestDefaultParams tests the canonical constants and their validity.
func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if p.SieveLimit != 100_000_000 {
		t.Errorf("SieveLimit = %d, want 100000000", p.SieveLimit)
	}
	if p.ScanLimit != 10_000 {
		t.Errorf("ScanLimit = %d, want 10000", p.ScanLimit)
	}
	if p.Granularity != 256 {
		t.Errorf("Granularity = %d, want 256", p.Granularity)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	// The canonical bounds give a complete sieve: every composite below
	// the sieve limit has a factor below the scan limit.
	if p.ScanLimit*p.ScanLimit < p.SieveLimit {
		t.Errorf("ScanLimit^2 = %d does not reach SieveLimit %d",
			p.ScanLimit*p.ScanLimit, p.SieveLimit)
	}
}

// TestParamsValidate tests rejection of out-of-range configurations.
func TestParamsValidate(t *testing.T) {
	valid := Params{SieveLimit: 10_000, ScanLimit: 100, Granularity: 64}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(Params) Params
		wantErr error
	}{
		{
			name:    "sieve limit zero",
			mutate:  func(p Params) Params { p.SieveLimit = 0; return p },
			wantErr: ErrSieveLimit,
		},
		{
			name:    "sieve limit one",
			mutate:  func(p Params) Params { p.SieveLimit = 1; return p },
			wantErr: ErrSieveLimit,
		},
		{
			name:    "scan limit below two",
			mutate:  func(p Params) Params { p.ScanLimit = 1; return p },
			wantErr: ErrScanLimit,
		},
		{
			name:    "scan limit above sieve limit",
			mutate:  func(p Params) Params { p.ScanLimit = 20_000; return p },
			wantErr: ErrScanLimit,
		},
		{
			name:    "granularity zero",
			mutate:  func(p Params) Params { p.Granularity = 0; return p },
			wantErr: ErrGranularity,
		},
		{
			name:    "granularity not word multiple",
			mutate:  func(p Params) Params { p.Granularity = 100; return p },
			wantErr: ErrGranularity,
		},
		{
			name:    "granularity negative",
			mutate:  func(p Params) Params { p.Granularity = -256; return p },
			wantErr: ErrGranularity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
