package platform

import "regexp"

var mobileAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsMobileAgent reports whether a browser user agent belongs to a phone or
// tablet.
func IsMobileAgent(userAgent string) bool {
	return mobileAgent.MatchString(userAgent)
}

// IsMobile reports whether the game should show on-screen controls. force
// comes from the -mobile flag.
func IsMobile(force bool) bool {
	return force || IsMobileAgent(userAgent())
}
