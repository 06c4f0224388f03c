// Package secrets resolves the database credentials from Google Secret
// Manager at startup.
//
// Four fixed secrets are read, each at its latest version:
// db_user_secret, db_password_secret, db_name_secret and
// cloud_sql_connection_name_secret. Values are not cached — the resolver
// runs once per process and the results live as long as the pool built
// from them.
package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2/google"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cloudpets/petsvc/internal/errs"
)

// Fixed secret names, shared with the deployment that provisions them.
const (
	keyDBUser         = "db_user_secret"
	keyDBPassword     = "db_password_secret"
	keyDBName         = "db_name_secret"
	keyConnectionName = "cloud_sql_connection_name_secret"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Credentials holds the four resolved secret values.
type Credentials struct {
	User           string
	Password       string
	Database       string
	ConnectionName string // Cloud SQL instance connection name (project:region:instance)
}

// AccessClient is the slice of the Secret Manager client the resolver
// needs. *secretmanager.Client satisfies it; tests substitute a fake.
type AccessClient interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Resolver reads the fixed credential secrets of one project.
type Resolver struct {
	client  AccessClient
	project string
}

// NewResolver builds a Resolver over an existing client.
func NewResolver(client AccessClient, project string) *Resolver {
	return &Resolver{client: client, project: project}
}

// NewGoogleResolver dials Secret Manager. When project is empty the
// project ID is discovered from ambient default credentials. The
// returned close func releases the client's gRPC connection.
func NewGoogleResolver(ctx context.Context, project string) (*Resolver, func() error, error) {
	if project == "" {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, nil, errs.Wrap(errs.ErrKindSecretAccess, "no default credentials", err)
		}
		if creds.ProjectID == "" {
			return nil, nil, errs.New(errs.ErrKindSecretAccess, "default credentials carry no project ID")
		}
		project = creds.ProjectID
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrKindSecretAccess, "cannot dial secret manager", err)
	}
	return NewResolver(client, project), client.Close, nil
}

// Resolve reads all four secrets. Any failure aborts the whole
// resolution — partial credentials are never returned.
func (r *Resolver) Resolve(ctx context.Context) (*Credentials, error) {
	user, err := r.access(ctx, keyDBUser)
	if err != nil {
		return nil, err
	}
	password, err := r.access(ctx, keyDBPassword)
	if err != nil {
		return nil, err
	}
	database, err := r.access(ctx, keyDBName)
	if err != nil {
		return nil, err
	}
	connectionName, err := r.access(ctx, keyConnectionName)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		User:           user,
		Password:       password,
		Database:       database,
		ConnectionName: connectionName,
	}, nil
}

func (r *Resolver) access(ctx context.Context, key string) (string, error) {
	name := versionName(r.project, key)
	resp, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", wrapAccessError(name, err)
	}
	return string(resp.GetPayload().GetData()), nil
}

// versionName builds the full resource name of a secret's latest version.
func versionName(project, key string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, key)
}

// wrapAccessError maps Secret Manager gRPC failures onto the secret
// access kind, keeping the status in the message for operators.
func wrapAccessError(name string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errs.Wrap(errs.ErrKindSecretAccess, fmt.Sprintf("secret %s does not exist", name), err)
	case codes.PermissionDenied:
		return errs.Wrap(errs.ErrKindSecretAccess, fmt.Sprintf("access to %s denied", name), err)
	default:
		return errs.Wrap(errs.ErrKindSecretAccess, fmt.Sprintf("cannot access %s", name), err)
	}
}
