package main

import (
	"errors"
	"fmt"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/sink"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type watchFlags struct {
	redisAddress string
	prefix       string
}

func newWatchCmd() *cobra.Command {
	var flags watchFlags

	cmd := &cobra.Command{
		Use:   "watch <viewer>",
		Short: "Print the payloads published for a viewer as they arrive",
		Long:  "Print the last stored payload of the viewer, if any, then every payload published on its channel until interrupted.",
		Args:  cobra.ExactArgs(1),
		RunE:  flags.runWatchCommand,
	}

	cmd.Flags().StringVar(&flags.redisAddress, "redis-addr", "localhost:6379", "Redis address")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "hints:", "Channel prefix, as REDIS_CHANNEL_PREFIX of the service")

	return cmd
}

func (f *watchFlags) runWatchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	viewer := args[0]

	rdb := redis.NewClient(&redis.Options{Addr: f.redisAddress})
	defer rdb.Close()

	rs := sink.NewRedisSink(rdb, f.prefix, 0)

	sub := rs.Subscribe(ctx, viewer)
	defer sub.Close()

	// the subscription is confirmed before the stored payload is read so no
	// payload published in between is missed
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("cannot subscribe to %s: %w", rs.Channel(viewer), err)
	}

	last, err := rs.LastPayload(ctx, viewer)
	switch {
	case errors.Is(err, sink.ErrNoPayload):
		log.Debug().Str("viewer", viewer).Msg("no stored payload")
	case err != nil:
		return err
	default:
		printPayload(cmd, viewer, last)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			printPayload(cmd, viewer, []byte(msg.Payload))
		}
	}
}

func printPayload(cmd *cobra.Command, viewer string, payload []byte) {
	frame, err := combiner.Decode(payload)
	if err != nil {
		log.Warn().Err(err).Str("viewer", viewer).Int("bytes", len(payload)).Msg("cannot decode payload")
		return
	}
	printFrame(cmd.OutOrStdout(), viewer, len(payload), frame)
}
