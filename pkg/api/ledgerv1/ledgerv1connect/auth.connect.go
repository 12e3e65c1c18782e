package ledgerv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "splitledger.v1.AuthService"

const (
	AuthServiceRegisterProcedure       = "/splitledger.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/splitledger.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/splitledger.v1.AuthService/GetCurrentUser"
)

// AuthServiceClient is a client for the splitledger.v1.AuthService service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[ledgerv1.RegisterRequest]) (*connect.Response[ledgerv1.RegisterResponse], error)
	Login(context.Context, *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[ledgerv1.GetCurrentUserRequest]) (*connect.Response[ledgerv1.GetCurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for the splitledger.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(codecOption))
	return &authServiceClient{
		register:       connect.NewClient[ledgerv1.RegisterRequest, ledgerv1.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[ledgerv1.LoginRequest, ledgerv1.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[ledgerv1.GetCurrentUserRequest, ledgerv1.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[ledgerv1.RegisterRequest, ledgerv1.RegisterResponse]
	login          *connect.Client[ledgerv1.LoginRequest, ledgerv1.LoginResponse]
	getCurrentUser *connect.Client[ledgerv1.GetCurrentUserRequest, ledgerv1.GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[ledgerv1.RegisterRequest]) (*connect.Response[ledgerv1.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[ledgerv1.GetCurrentUserRequest]) (*connect.Response[ledgerv1.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the server side of splitledger.v1.AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[ledgerv1.RegisterRequest]) (*connect.Response[ledgerv1.RegisterResponse], error)
	Login(context.Context, *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[ledgerv1.GetCurrentUserRequest]) (*connect.Response[ledgerv1.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(codecOption))
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
	})
}

// PublicProcedures lists the procedures callable without a bearer token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}
