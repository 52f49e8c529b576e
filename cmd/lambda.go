package cmd

import (
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/abhisek/promptcheck/internal/lambda"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda function behind API Gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), os.Stderr)
		if err != nil {
			return err
		}

		adapter := lambda.NewAdapter(rt.handler, rt.logger)
		// Start blocks for the lifetime of the function instance.
		awslambda.Start(adapter.Handle)
		return nil
	},
}
