// Copyright © NGRSoftlab 2020-2025

package main

import "testing"

func TestParseRemoteSpec(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    *remoteSpec
		wantErr bool
	}{
		{"basic", "alice@example.com:/tmp/data", &remoteSpec{User: "alice", Host: "example.com", Path: "/tmp/data"}, false},
		{"relative path", "bob@host:rel/path", &remoteSpec{User: "bob", Host: "host", Path: "rel/path"}, false},
		{"missing colon", "alice@example.com", nil, true},
		{"missing user", "example.com:/tmp", nil, true},
		{"empty path", "alice@example.com:", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRemoteSpec(tc.arg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseRemoteSpec(%q): expected error", tc.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRemoteSpec(%q): unexpected error: %v", tc.arg, err)
			}
			if *got != *tc.want {
				t.Errorf("parseRemoteSpec(%q) = %+v; want %+v", tc.arg, got, tc.want)
			}
		})
	}
}
