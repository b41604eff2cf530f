package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nagyist/IOLVMPartitionScheme/pkg/backend"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/device"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/iobuf"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/logging"
	"github.com/nagyist/IOLVMPartitionScheme/pkg/mem"
)

var (
	offset    uint64
	count     uint64
	blockSize uint64
	verbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lvmread <image>",
	Short: "Read a byte range from a block device image",
	Long: `lvmread opens a device image read-only and reads an arbitrary byte
range through the block-aligned read path, hexdumping the result.

The requested range does not have to be aligned to the device's block
size; misaligned requests are widened to block boundaries internally.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		var opts []backend.FileOption
		if blockSize != 0 {
			opts = append(opts, backend.WithBlockSize(blockSize))
		}

		d, err := device.Open(
			backend.NewFile(args[0], opts...),
			device.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("failed to open device: %w", err)
		}
		defer func() {
			if closeErr := d.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close device: %v\n", closeErr)
			}
		}()

		buf, err := iobuf.New(mem.System(), int(count))
		if err != nil {
			return fmt.Errorf("failed to allocate read buffer: %w", err)
		}
		defer buf.Free()

		if err := d.Read(offset, count, buf); err != nil {
			return fmt.Errorf("failed to read %d bytes at %d: %w", count, offset, err)
		}

		fmt.Printf("block size: %d\n", d.BlockSize())
		fmt.Print(hex.Dump(buf.Bytes()))

		return nil
	},
}

func init() {
	rootCmd.Flags().Uint64Var(&offset, "offset", 0, "byte offset to read from")
	rootCmd.Flags().Uint64Var(&count, "count", 512, "number of bytes to read")
	rootCmd.Flags().Uint64Var(&blockSize, "block-size", 0, "override the device block size")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "log unaligned-read diagnostics")
}
