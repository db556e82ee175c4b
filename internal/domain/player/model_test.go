package player_test

import (
	"errors"
	"strings"
	"testing"

	"badminton/internal/domain/ledger"
	"badminton/internal/domain/player"
)

// TestPlayerValidation tests validation of Player.
func TestPlayerValidation(t *testing.T) {
	tests := []struct {
		name    string
		player  player.Player
		wantErr bool
	}{
		{"valid player", player.Player{Name: "Alice", Contact: "0211234567"}, false},
		{"unknown contact", player.Player{Name: "Bob", Contact: player.ContactUnknown}, false},
		{"empty name", player.Player{Name: "", Contact: "0211234567"}, true},
		{"blank name", player.Player{Name: "   ", Contact: "0211234567"}, true},
		{"long name", player.Player{Name: strings.Repeat("a", player.MaxNameLength+1), Contact: player.ContactUnknown}, true},
		{"cjk name at limit", player.Player{Name: strings.Repeat("李", player.MaxNameLength), Contact: player.ContactUnknown}, false},
		{"cjk name too long", player.Player{Name: strings.Repeat("李", player.MaxNameLength+1), Contact: player.ContactUnknown}, true},
		{"short contact", player.Player{Name: "Alice", Contact: "12345"}, true},
		{"letters in contact", player.Player{Name: "Alice", Contact: "02112345ab"}, true},
		{"eleven digits", player.Player{Name: "Alice", Contact: "02112345678"}, true},
		{"empty contact", player.Player{Name: "Alice", Contact: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.player.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Player.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ledger.ErrValidation) {
				t.Errorf("Player.Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

// TestNew tests normalization performed by New.
func TestNew(t *testing.T) {
	t.Run("trims name and defaults contact", func(t *testing.T) {
		p, err := player.New("  Alice ", "")
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}
		if p.Name != "Alice" {
			t.Errorf("Name = %q, want Alice", p.Name)
		}
		if p.Contact != player.ContactUnknown {
			t.Errorf("Contact = %q, want %q", p.Contact, player.ContactUnknown)
		}
		if p.HasContact() {
			t.Error("HasContact() = true, want false")
		}
	})

	t.Run("keeps name case", func(t *testing.T) {
		p, err := player.New("aLiCe", "0211234567")
		if err != nil {
			t.Fatalf("New() unexpected error: %v", err)
		}
		if p.Name != "aLiCe" || !p.HasContact() {
			t.Errorf("New() = %+v", p)
		}
	})

	t.Run("rejects malformed contact", func(t *testing.T) {
		if _, err := player.New("Alice", "555-1234"); !errors.Is(err, ledger.ErrValidation) {
			t.Errorf("New() error = %v, want ErrValidation", err)
		}
	})
}
