// Gramgate - Instagram REST facade
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gramgate

package instagram

import (
	"errors"
	"testing"
)

func TestCapabilitySet(t *testing.T) {
	t.Parallel()

	set := NewCapabilitySet(CapDirectSend, CapMediaDelete)

	if len(set) != len(AllCapabilities())-2 {
		t.Errorf("len(set) = %d, want %d", len(set), len(AllCapabilities())-2)
	}
	if !set.Has(CapUserInfo) {
		t.Error("CapUserInfo should be supported")
	}
	if err := set.Require(CapUserInfo); err != nil {
		t.Errorf("Require(CapUserInfo) = %v", err)
	}

	err := set.Require(CapDirectSend)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Require(CapDirectSend) = %v, want ErrUnsupported", err)
	}
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Capability != CapDirectSend {
		t.Errorf("expected *UnsupportedError naming direct_send, got %v", err)
	}

	names := set.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

func TestParseCapabilities(t *testing.T) {
	t.Parallel()

	got, err := ParseCapabilities([]string{" Direct_Send ", "", "media_delete"})
	if err != nil {
		t.Fatalf("ParseCapabilities: %v", err)
	}
	if len(got) != 2 || got[0] != CapDirectSend || got[1] != CapMediaDelete {
		t.Errorf("ParseCapabilities = %v", got)
	}

	if _, err := ParseCapabilities([]string{"teleport"}); err == nil {
		t.Error("unknown capability should be rejected")
	}
}
