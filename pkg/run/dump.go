package run

import (
	"os"

	"github.com/oisee/sim8086/pkg/cpu"
)

// DumpFileName is the fixed output path --dump writes the final memory
// image to, matching what the course's companion memory-viewer tooling
// expects to find in the current directory.
const DumpFileName = "sim86_memory_0.data"

// DumpMemory writes the full 64 KiB memory image to DumpFileName.
func DumpMemory(mem cpu.Memory) error {
	return os.WriteFile(DumpFileName, mem[:], 0o644)
}
