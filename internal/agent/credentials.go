package agent

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
)

// AWSConfig builds the aws.Config handed to the agent runtime and the
// artifact uploader, using the already-validated environment snapshot.
// The session token is optional; when present the static provider carries
// it for temporary-credential flows.
func AWSConfig(ctx context.Context, snap envcheck.Snapshot) (aws.Config, error) {
	res := envcheck.Validate(snap)
	if !res.OK() {
		return aws.Config{}, fmt.Errorf("environment not validated: %d required variables missing", len(res.MissingRequired))
	}

	provider := credentials.NewStaticCredentialsProvider(
		snap.Get("AWS_ACCESS_KEY_ID"),
		snap.Get("AWS_SECRET_ACCESS_KEY"),
		snap.Get("AWS_SESSION_TOKEN"),
	)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(snap.Get("AWS_REGION")),
		awsconfig.WithCredentialsProvider(provider),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}
