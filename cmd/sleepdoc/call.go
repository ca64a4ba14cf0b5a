package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/client/channel"
)

type invoker interface {
	Invoke(ctx context.Context, call bridge.Call, result bridge.Result)
}

func callCmd() *cobra.Command {
	var (
		args   string
		remote string
	)

	cmd := &cobra.Command{
		Use:   "call <method>",
		Short: "Invoke a bridge method",
		Long: "Runs a method on the " + bridge.ChannelName + " channel and prints the reply envelope: " +
			"[result] on success, [code, message, details] on error, nothing when the method is not implemented.\n\n" +
			"With --remote the call goes to a running `sleepdoc serve` instead of the local account.",
		Example: "  sleepdoc call getSleepData\n" +
			"  sleepdoc call getBodyData\n" +
			"  sleepdoc call getSleepData --remote http://localhost:8080",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			ctx := cmd.Context()

			var target invoker
			if remote != "" {
				target = channel.NewClient(remote)
			} else {
				a, err := newApp(ctx, appOptions{})
				if err != nil {
					return err
				}
				defer func() { _ = a.Close() }()
				target = a.channel
			}

			call := bridge.Call{Method: positional[0]}
			if args != "" {
				call.Args = []byte(args)
			}

			result := &bridge.Recorder{}
			target.Invoke(ctx, call, result)

			reply, _ := result.Reply()
			if reply.Outcome == bridge.OutcomeNotImplemented {
				fmt.Fprintf(os.Stderr, "%s is not implemented\n", call.Method)
				return nil
			}

			envelope, err := reply.Encode()
			if err != nil {
				return fmt.Errorf("encoding reply: %w", err)
			}
			fmt.Println(string(envelope))

			if reply.Outcome == bridge.OutcomeError {
				return fmt.Errorf("%s: %s", reply.Code, reply.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&args, "args", "", "JSON arguments passed with the call")
	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a sleepdoc server to call instead of the local account")
	return cmd
}
