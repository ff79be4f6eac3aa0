//go:build windows

package tray

// platformIcon wraps the PNG in an ICO container, which is all the Windows tray accepts.
func platformIcon(pngData []byte) []byte {
	return wrapICO(pngData, iconSize)
}
