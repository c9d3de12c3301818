//go:build js && wasm

package platform

import "syscall/js"

func userAgent() string {
	nav := js.Global().Get("navigator")
	if nav.IsUndefined() || nav.IsNull() {
		return ""
	}
	return nav.Get("userAgent").String()
}
