package repo

import "testing"

func TestIgnoreChecker(t *testing.T) {
	rules := []byte(`# build output
*.log
build/
/docs/*.tmp
!keep.log
`)
	ic, err := NewIgnoreChecker(rules, []string{"secret*"})
	if err != nil {
		t.Fatalf("NewIgnoreChecker: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"app.log", true},
		{"sub/app.log", true},
		{"keep.log", false},
		{"build/out.bin", true},
		{"src/build/out.bin", true},
		{"build", false},
		{"docs/draft.tmp", true},
		{"docs/deep/draft.tmp", false},
		{"secrets.env", true},
		{".gitlet/HEAD", true},
		{"main.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ic.IsIgnored(tt.path); got != tt.want {
				t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNilIgnoreCheckerIgnoresNothing(t *testing.T) {
	var ic *IgnoreChecker
	if ic.IsIgnored("anything") {
		t.Fatal("nil checker ignored a path")
	}
}
