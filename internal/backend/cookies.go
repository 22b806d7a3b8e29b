package backend

import (
	"context"
	"net/http"
	"sync"
)

type contextKey string

const (
	cookiesKey contextKey = "backendCookies"
	sinkKey    contextKey = "backendCookieSink"
)

// WithCookies attaches the browser's cookies to ctx; every backend call made
// with the returned context forwards them.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesKey, cookies)
}

// CookiesFrom returns the cookies attached with WithCookies.
func CookiesFrom(ctx context.Context) []*http.Cookie {
	if v, ok := ctx.Value(cookiesKey).([]*http.Cookie); ok {
		return v
	}
	return nil
}

// CookieSink collects Set-Cookie headers the backend answers with so they can
// be relayed to the browser.
type CookieSink struct {
	mu      sync.Mutex
	cookies []*http.Cookie
}

// WithCookieSink installs a fresh sink on ctx.
func WithCookieSink(ctx context.Context) (context.Context, *CookieSink) {
	sink := &CookieSink{}
	return context.WithValue(ctx, sinkKey, sink), sink
}

// SinkFrom returns the sink installed with WithCookieSink, or nil.
func SinkFrom(ctx context.Context) *CookieSink {
	if v, ok := ctx.Value(sinkKey).(*CookieSink); ok {
		return v
	}
	return nil
}

func (s *CookieSink) add(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = append(s.cookies, cookies...)
}

// Cookies returns what was collected so far, in arrival order.
func (s *CookieSink) Cookies() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Cookie(nil), s.cookies...)
}

// Get returns the last collected cookie called name.
func (s *CookieSink) Get(name string) *http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.cookies) - 1; i >= 0; i-- {
		if s.cookies[i].Name == name {
			return s.cookies[i]
		}
	}
	return nil
}

// attachCookies forwards context cookies and, on mutations, the XSRF token.
func (c *Client) attachCookies(ctx context.Context, req *http.Request) {
	xsrf := ""
	for _, ck := range CookiesFrom(ctx) {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		if ck.Name == XSRFCookie {
			xsrf = ck.Value
		}
	}
	if sink := SinkFrom(ctx); xsrf == "" && sink != nil {
		if ck := sink.Get(XSRFCookie); ck != nil {
			xsrf = ck.Value
		}
	}
	if xsrf == "" && c.httpClient.Jar != nil {
		for _, ck := range c.httpClient.Jar.Cookies(req.URL) {
			if ck.Name == XSRFCookie {
				xsrf = ck.Value
			}
		}
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
	default:
		if xsrf != "" {
			req.Header.Set(XSRFHeader, xsrf)
		}
	}
}
