package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gregLibert/emrtd/pkg/lds"
)

// ldsDir is a SecurityInfo wrapping an EF.DIR that lists the LDS1 application.
const ldsDir = "3015 0606 6781080101 0D 040B 6109 4F07 A0000002471001"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		derOutput = false
		verbose = false
		claHex = "00"
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDecode(t *testing.T) {
	out, _, err := execute(t, "decode", ldsDir)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	for _, want := range []string{
		"=== EF.DIR SECURITY INFO ===",
		"Protocol: id-EFDIR (2.23.136.1.1.13)",
		"App[1].AID (4F): A0000002471001",
		"DER: 301506066781080101",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestDecode_DEROnly(t *testing.T) {
	out, _, err := execute(t, "decode", "--der", ldsDir)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	want := strings.ReplaceAll(ldsDir, " ", "") + "\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestDecode_Stdin(t *testing.T) {
	t.Cleanup(func() { derOutput = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader("300A0606678108\n01010D0400\n"))
	rootCmd.SetArgs([]string{"decode", "--der"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "300A060667810801010D0400" {
		t.Errorf("got %q", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"not hex", "30ZZ", "decoding hex"},
		{"unknown protocol", "300A06066781080101 7F 0400", lds.ErrUnsupportedProtocol.Error()},
		{"trailing data", "300A060667810801010D0400 00", lds.ErrMalformed.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "decode", tt.arg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCommandClass(t *testing.T) {
	t.Cleanup(func() { claHex = "00" })

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"00", false},
		{"0C", false},
		{"80", false},
		{"zz", true},
		{"100", true},
		{"FF", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			claHex = tt.in
			_, err := commandClass()
			if (err != nil) != tt.wantErr {
				t.Errorf("commandClass(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
