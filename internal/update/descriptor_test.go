package update

import (
	"errors"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantRelease string
		wantPre     int
		wantErr     error
	}{
		{
			name:        "release only",
			body:        "2.4.2",
			wantRelease: "2.4.2",
		},
		{
			name:        "release with prereleases",
			body:        "1.2.3\nalpha=1.3.0-alpha\nbeta=1.4.0-beta",
			wantRelease: "1.2.3",
			wantPre:     2,
		},
		{
			name:        "surrounding whitespace",
			body:        "\n  2.4.2  \nalpha=2.5.0-alpha1\n\n",
			wantRelease: "2.4.2",
			wantPre:     1,
		},
		{
			name:        "crlf line endings",
			body:        "2.4.2\r\nbeta=2.5.0-beta.1\r\n",
			wantRelease: "2.4.2",
			wantPre:     1,
		},
		{
			name:        "unknown lines ignored",
			body:        "2.4.2\nnotes=see website\n\nbeta=2.5.0-beta.1",
			wantRelease: "2.4.2",
			wantPre:     1,
		},
		{
			name:    "empty document",
			body:    "",
			wantErr: ErrInvalidReleaseVersion,
		},
		{
			name:    "malformed release",
			body:    "not-a-version\nalpha=2.5.0-alpha1",
			wantErr: ErrInvalidReleaseVersion,
		},
		{
			name:    "malformed prerelease fails the whole document",
			body:    "2.4.2\nalpha=broken",
			wantErr: ErrInvalidPrereleaseVersion,
		},
		{
			name:    "malformed beta after valid alpha",
			body:    "2.4.2\nalpha=2.5.0-alpha1\nbeta=oops",
			wantErr: ErrInvalidPrereleaseVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ParseDescriptor(tt.body)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDescriptor() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescriptor() error = %v", err)
			}
			if got := report.Release.String(); got != tt.wantRelease {
				t.Errorf("Release = %s, want %s", got, tt.wantRelease)
			}
			if len(report.Prereleases) != tt.wantPre {
				t.Errorf("len(Prereleases) = %d, want %d", len(report.Prereleases), tt.wantPre)
			}
		})
	}
}

func TestParseDescriptorChannels(t *testing.T) {
	report, err := ParseDescriptor("2.4.2\nbeta=2.5.0-beta1\nalpha=2.6.0-alpha1")
	if err != nil {
		t.Fatalf("ParseDescriptor() error = %v", err)
	}

	if len(report.Prereleases) != 2 {
		t.Fatalf("len(Prereleases) = %d, want 2", len(report.Prereleases))
	}
	if report.Prereleases[0].Channel != ChannelBeta {
		t.Errorf("Prereleases[0].Channel = %s, want %s", report.Prereleases[0].Channel, ChannelBeta)
	}
	if report.Prereleases[1].Channel != ChannelAlpha {
		t.Errorf("Prereleases[1].Channel = %s, want %s", report.Prereleases[1].Channel, ChannelAlpha)
	}
}

func TestReportExperimental(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{
			name: "beta ahead of alpha and release",
			body: "1.2.3\nalpha=1.3.0-alpha\nbeta=1.4.0-beta",
			want: "1.4.0-beta",
			ok:   true,
		},
		{
			name: "alpha ahead of beta",
			body: "2.4.2\nbeta=2.5.0-beta1\nalpha=2.6.0-alpha1",
			want: "2.6.0-alpha1",
			ok:   true,
		},
		{
			name: "prereleases behind release",
			body: "2.4.2\nalpha=2.4.0-alpha1\nbeta=2.4.1-beta2",
			ok:   false,
		},
		{
			name: "prerelease equal to release",
			body: "2.4.2\nbeta=2.4.2",
			ok:   false,
		},
		{
			name: "no prereleases",
			body: "2.4.2",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ParseDescriptor(tt.body)
			if err != nil {
				t.Fatalf("ParseDescriptor() error = %v", err)
			}

			got, ok := report.Experimental()
			if ok != tt.ok {
				t.Fatalf("Experimental() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Experimental() = %s, want %s", got, tt.want)
			}
		})
	}
}
