package indicator

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

// AccessURL awards full points when the distribution's access URL is a
// syntactically valid absolute http(s) URL. Reachability is not checked.
func AccessURL(d *record.Distribution) Result {
	if d.AccessURL == "" {
		return binary("access_url", Accessibility, PointsAccessURL, false, "No access URL given")
	}
	if !validAbsoluteURL(d.AccessURL) {
		return binary("access_url", Accessibility, PointsAccessURL, false,
			fmt.Sprintf("Access URL %q is not a valid absolute URL", d.AccessURL))
	}
	return binary("access_url", Accessibility, PointsAccessURL, true, "Valid access URL given")
}

// DownloadURLPresent checks existence and syntactic validity of the
// download URL, independent of reachability.
func DownloadURLPresent(d *record.Distribution) Result {
	if d.DownloadURL == "" {
		return binary("download_url", Accessibility, PointsDownloadURL, false, "No download URL given")
	}
	if !validAbsoluteURL(d.DownloadURL) {
		return binary("download_url", Accessibility, PointsDownloadURL, false,
			fmt.Sprintf("Download URL %q is not a valid absolute URL", d.DownloadURL))
	}
	return binary("download_url", Accessibility, PointsDownloadURL, true, "Valid download URL given")
}

// DownloadURLReachable asks the injected prober whether the download URL
// answers. Probe failures and timeouts score zero with the reason in the
// rationale; a nil prober marks the run as offline.
func DownloadURLReachable(ctx context.Context, d *record.Distribution, prober Prober, timeout time.Duration) Result {
	const name = "download_url_reachable"
	if d.DownloadURL == "" || !validAbsoluteURL(d.DownloadURL) {
		return binary(name, Accessibility, PointsDownloadReachable, false, "No valid download URL to probe")
	}
	if prober == nil {
		return binary(name, Accessibility, PointsDownloadReachable, false, "Offline run, reachability not probed")
	}
	res := prober.Check(ctx, d.DownloadURL, timeout)
	switch {
	case res.Reachable:
		return binary(name, Accessibility, PointsDownloadReachable, true,
			fmt.Sprintf("Download URL answered with status %d", res.Status))
	case res.Err != "":
		return binary(name, Accessibility, PointsDownloadReachable, false,
			fmt.Sprintf("Probe failed: %s", res.Err))
	default:
		return binary(name, Accessibility, PointsDownloadReachable, false,
			fmt.Sprintf("Download URL answered with status %d", res.Status))
	}
}

func validAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
