package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("bad request"), want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "dial", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: true},
		{name: "read timeout", err: &net.OpError{Op: "read", Err: timeoutErr{}}, want: true},
		{name: "dns temporary", err: &net.DNSError{Err: "no such host", IsTemporary: true}, want: true},
		{name: "url wrapping dial", err: &url.Error{Op: "Post", URL: "https://api.telegram.org", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}}, want: true},
		{name: "url wrapping plain", err: &url.Error{Op: "Post", URL: "https://api.telegram.org", Err: errors.New("eof")}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetry(tt.err); got != tt.want {
				t.Errorf("ShouldRetry(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
