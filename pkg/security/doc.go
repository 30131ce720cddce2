// Package security provides SSRF (server-side request forgery) protection
// for outbound HTTP requests.
//
// # Overview
//
// SSRFProtection checks a URL before it is requested. pkg/httpclient builds
// one from the engine's config.Config and applies it to every request its
// clients send and to every redirect they follow.
//
// # Checks
//
// ValidateURL rejects a URL when:
//
//   - it does not parse, or has no hostname
//   - its scheme is not in AllowedSchemes (http and https when empty)
//   - its hostname is in BlockedDomains
//   - AllowedDomains is non-empty and does not contain the hostname
//     (exact, case-insensitive match; subdomains are not matched)
//   - the host is, or resolves to, a blocked address: loopback
//     (BlockLocalhost), private ranges (BlockPrivateIPs), link-local
//     (BlockLinkLocal) or a cloud metadata endpoint (BlockCloudMetadata)
//
// A hostname is first checked by name ("localhost",
// "metadata.google.internal", ...) and then resolved with net.LookupIP;
// every resolved address is checked. A hostname that does not resolve is
// accepted once the name checks pass.
//
// # Usage
//
//	// DefaultSSRFConfig: http/https only, every address class above blocked
//	protection := security.NewSSRFProtection()
//	if err := protection.ValidateURL(rawURL); err != nil {
//	    return fmt.Errorf("URL not allowed: %w", err)
//	}
//
//	custom := security.NewSSRFProtectionWithConfig(security.SSRFConfig{
//	    AllowedSchemes: []string{"https"},
//	    BlockLocalhost: true,
//	    AllowedDomains: []string{"api.example.com"},
//	})
//
// # Errors
//
// ValidateURL returns formatted errors; it does not wrap the sentinel errors
// declared in errors.go.
//
// # Thread Safety
//
// An SSRFProtection is not modified after construction, so ValidateURL may be
// called from multiple goroutines.
package security
