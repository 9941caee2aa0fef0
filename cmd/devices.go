package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"recbox/core/device"
)

var devicesProbe bool

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := device.NewPortAudioGateway(device.CaptureParams{
			SampleRate:      cfg.SampleRate,
			Channels:        cfg.Channels,
			FramesPerBuffer: framesPerBuffer(),
		})
		if err != nil {
			return err
		}
		defer gateway.Close()

		descriptors := gateway.ListInputDevices()
		if len(descriptors) == 0 {
			fmt.Println("No usable input devices.")
			return nil
		}

		for _, d := range descriptors {
			if devicesProbe {
				status := "dead"
				if gateway.Probe(d.ID) {
					status = "live"
				}
				fmt.Printf("%-40s  [%s]  %s\n", d.Label, d.GroupID, status)
			} else {
				fmt.Printf("%-40s  [%s]\n", d.Label, d.GroupID)
			}
		}
		return nil
	},
}

// framesPerBuffer sizes the hardware read buffer to the chunk interval.
func framesPerBuffer() int {
	frames := cfg.SampleRate * cfg.ChunkMillis / 1000
	if frames < 64 {
		frames = 64
	}
	return frames
}

func init() {
	devicesCmd.Flags().BoolVar(&devicesProbe, "probe", false, "probe each device for live audio")
	rootCmd.AddCommand(devicesCmd)
}
