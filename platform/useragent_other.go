//go:build !(js && wasm)

package platform

func userAgent() string {
	return ""
}
