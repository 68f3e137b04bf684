// Package credentials holds the configured cloud accounts and resolves the
// credentials used to talk to their APIs.
//
// Credentials form a closed set of variants. Only *ECSCredentials can be used
// to build an ECS client, so code that needs one asks a Resolver for it and
// never inspects variants itself.
package credentials

import (
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
)

// AccountType names a credentials variant in configuration.
type AccountType string

const (
	AWSAccountType AccountType = "aws"
	ECSAccountType AccountType = "ecs"
)

// Credentials is implemented by AWSCredentials and ECSCredentials only.
type Credentials interface {
	// Name is the configured account name
	Name() string
	// AccountID is the numeric cloud account id, if configured
	AccountID() string
	// Type returns the configured variant
	Type() AccountType

	sealed()
}

// AWSCredentials identifies a plain AWS account that is not enabled for ECS.
type AWSCredentials struct {
	name      string
	accountID string
	regions   []string
}

var _ Credentials = &AWSCredentials{}

func (c *AWSCredentials) Name() string      { return c.name }
func (c *AWSCredentials) AccountID() string { return c.accountID }
func (c *AWSCredentials) Type() AccountType { return AWSAccountType }
func (c *AWSCredentials) sealed()           {}

// Regions returns the enabled regions. An empty list enables every region.
func (c *AWSCredentials) Regions() []string {
	return slices.Clone(c.regions)
}

// SupportsRegion reports whether region is enabled for the account.
func (c *AWSCredentials) SupportsRegion(region string) bool {
	return len(c.regions) == 0 || slices.Contains(c.regions, region)
}

// ECSCredentials identifies an AWS account that is enabled for ECS.
type ECSCredentials struct {
	AWSCredentials

	assumeRole string
	externalID string
	static     *aws.Credentials
}

var _ Credentials = &ECSCredentials{}

func (c *ECSCredentials) Type() AccountType { return ECSAccountType }

// AssumeRole returns the ARN of the role to assume, or an empty string.
func (c *ECSCredentials) AssumeRole() string { return c.assumeRole }

// ExternalID returns the external id presented when assuming the role.
func (c *ECSCredentials) ExternalID() string { return c.externalID }

// CredentialsProvider returns the provider for the configured static keys.
// It returns nil when the default credential chain should be used.
func (c *ECSCredentials) CredentialsProvider() aws.CredentialsProvider {
	if c.static == nil {
		return nil
	}

	return awscreds.NewStaticCredentialsProvider(c.static.AccessKeyID, c.static.SecretAccessKey, c.static.SessionToken)
}
