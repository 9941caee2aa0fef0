package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"recbox/core/capture"
	"recbox/core/device"
	"recbox/core/session"
	"recbox/db"
	"recbox/model"
)

var recordDevice string

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone",
	Long:  `Starts recording from the selected (or default) input device. Controls: p = pause, r = resume, s or Enter = stop and save.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, gdb, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		gateway, err := device.NewPortAudioGateway(device.CaptureParams{
			SampleRate:      cfg.SampleRate,
			Channels:        cfg.Channels,
			FramesPerBuffer: framesPerBuffer(),
		})
		if err != nil {
			return err
		}
		defer gateway.Close()

		sess := session.NewSession(gateway, capture.OpenStreamPipeline, repo,
			session.WithChunkInterval(time.Duration(cfg.ChunkMillis)*time.Millisecond))

		if err := sess.Start(recordDevice); err != nil {
			return err
		}
		fmt.Println("Recording. p = pause, r = resume, s or Enter = stop and save.")

		lines := make(chan string)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				lines <- strings.TrimSpace(strings.ToLower(scanner.Text()))
			}
			close(lines)
		}()

		status := time.NewTicker(time.Second)
		defer status.Stop()

		for {
			select {
			case <-status.C:
				if sess.Phase() == model.PhaseRecording {
					fmt.Printf("\rRecording... %ds ", sess.Elapsed())
				}

			case line, ok := <-lines:
				if !ok {
					// Stdin closed: stop and wait for the result.
					lines = nil
					line = "s"
				}
				switch line {
				case "p":
					sess.Pause()
					fmt.Printf("\rPaused at %ds. r = resume, s = stop.\n", sess.Elapsed())
				case "r":
					sess.Resume()
				case "s", "":
					if err := sess.Stop(); err != nil && !errors.Is(err, model.ErrInvalidState) {
						return err
					}
				}

			case result := <-sess.Results():
				fmt.Println()
				if result.Err != nil {
					if errors.Is(result.Err, model.ErrPersistenceFailed) {
						// The audio was captured but the save failed.
						return fmt.Errorf("recording captured but could not be saved: %w", result.Err)
					}
					return result.Err
				}
				rec := result.Recording
				fmt.Printf("Saved %q (%ds) as %s\n", rec.Name, rec.Duration, rec.ID)
				return nil
			}
		}
	},
}

func init() {
	recordCmd.Flags().StringVarP(&recordDevice, "device", "d", "", "input device id (default: platform default)")
	rootCmd.AddCommand(recordCmd)
}
