//go:build windows

package console

import (
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procGetConsoleWindow = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetConsoleWindow")

var shells = map[string]bool{
	"cmd.exe":             true,
	"powershell.exe":      true,
	"pwsh.exe":            true,
	"wt.exe":              true,
	"conhost.exe":         true,
	"windowsterminal.exe": true,
}

// LaunchedFromDesktop reports whether the process has no console or was
// started by Explorer rather than a shell.
func LaunchedFromDesktop() bool {
	if hwnd, _, _ := procGetConsoleWindow.Call(); hwnd == 0 {
		return true
	}
	parent := strings.ToLower(parentName())
	if shells[parent] {
		return false
	}
	return parent == "explorer.exe"
}

func parentName() string {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(snap)

	entries := map[uint32]windows.ProcessEntry32{}
	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err = windows.Process32First(snap, &pe); err == nil; err = windows.Process32Next(snap, &pe) {
		entries[pe.ProcessID] = pe
	}
	self, ok := entries[uint32(os.Getpid())]
	if !ok {
		return ""
	}
	parent, ok := entries[self.ParentProcessID]
	if !ok {
		return ""
	}
	return windows.UTF16ToString(parent.ExeFile[:])
}
