// Package cognito wraps the AWS Cognito user pool the clinic delegates
// identity to. Services talk to CognitoInterface so tests can swap in
// a fake; error codes are surfaced as smithy APIErrors for the caller
// to map.
package cognito

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type User struct {
	Email    string
	Password string
}

type UserLogin struct {
	Email    string
	Password string
}

type UserConfirmation struct {
	Email string
	Code  string
}

type AuthCreate struct {
	AccessToken string
	IDToken     string
}

type CognitoInterface interface {
	SignUp(user *User) (string, error)
	SignIn(login *UserLogin) (*AuthCreate, error)
	ConfirmAccount(confirm *UserConfirmation) error
	AdminDeleteUser(email string) error
}

type cognitoClient struct {
	client      *cognitoidentityprovider.Client
	appClientID string
	userPoolID  string
}

func InitCognitoClient() (CognitoInterface, error) {
	appClientID := os.Getenv("COGNITO_CLIENT_ID")
	if appClientID == "" {
		return nil, errors.New("COGNITO_CLIENT_ID is not set")
	}
	userPoolID := os.Getenv("COGNITO_USER_POOL_ID")
	if userPoolID == "" {
		return nil, errors.New("COGNITO_USER_POOL_ID is not set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}

	return &cognitoClient{
		client:      cognitoidentityprovider.NewFromConfig(cfg),
		appClientID: appClientID,
		userPoolID:  userPoolID,
	}, nil
}

// SignUp registers the user on the pool and returns the sub UUID that
// links the Cognito identity to our local row.
func (c *cognitoClient) SignUp(user *User) (string, error) {
	out, err := c.client.SignUp(context.Background(), &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(c.appClientID),
		Username: aws.String(user.Email),
		Password: aws.String(user.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(user.Email)},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.UserSub), nil
}

func (c *cognitoClient) SignIn(login *UserLogin) (*AuthCreate, error) {
	out, err := c.client.InitiateAuth(context.Background(), &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.appClientID),
		AuthParameters: map[string]string{
			"USERNAME": login.Email,
			"PASSWORD": login.Password,
		},
	})
	if err != nil {
		return nil, err
	}
	if out.AuthenticationResult == nil {
		return nil, errors.New("cognito returned no authentication result")
	}
	return &AuthCreate{
		AccessToken: aws.ToString(out.AuthenticationResult.AccessToken),
		IDToken:     aws.ToString(out.AuthenticationResult.IdToken),
	}, nil
}

func (c *cognitoClient) ConfirmAccount(confirm *UserConfirmation) error {
	_, err := c.client.ConfirmSignUp(context.Background(), &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(c.appClientID),
		Username:         aws.String(confirm.Email),
		ConfirmationCode: aws.String(confirm.Code),
	})
	return err
}

func (c *cognitoClient) AdminDeleteUser(email string) error {
	_, err := c.client.AdminDeleteUser(context.Background(), &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	return err
}
