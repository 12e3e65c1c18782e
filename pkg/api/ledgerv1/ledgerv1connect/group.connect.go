package ledgerv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "splitledger.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure = "/splitledger.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure    = "/splitledger.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure  = "/splitledger.v1.GroupService/ListGroups"
	GroupServiceAddMemberProcedure   = "/splitledger.v1.GroupService/AddMember"
)

// GroupServiceClient is a client for the splitledger.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[ledgerv1.CreateGroupRequest]) (*connect.Response[ledgerv1.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[ledgerv1.GetGroupRequest]) (*connect.Response[ledgerv1.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ledgerv1.ListGroupsRequest]) (*connect.Response[ledgerv1.ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[ledgerv1.AddMemberRequest]) (*connect.Response[ledgerv1.AddMemberResponse], error)
}

// NewGroupServiceClient constructs a client for the splitledger.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(codecOption))
	return &groupServiceClient{
		createGroup: connect.NewClient[ledgerv1.CreateGroupRequest, ledgerv1.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:    connect.NewClient[ledgerv1.GetGroupRequest, ledgerv1.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:  connect.NewClient[ledgerv1.ListGroupsRequest, ledgerv1.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addMember:   connect.NewClient[ledgerv1.AddMemberRequest, ledgerv1.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup *connect.Client[ledgerv1.CreateGroupRequest, ledgerv1.CreateGroupResponse]
	getGroup    *connect.Client[ledgerv1.GetGroupRequest, ledgerv1.GetGroupResponse]
	listGroups  *connect.Client[ledgerv1.ListGroupsRequest, ledgerv1.ListGroupsResponse]
	addMember   *connect.Client[ledgerv1.AddMemberRequest, ledgerv1.AddMemberResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[ledgerv1.CreateGroupRequest]) (*connect.Response[ledgerv1.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[ledgerv1.GetGroupRequest]) (*connect.Response[ledgerv1.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ledgerv1.ListGroupsRequest]) (*connect.Response[ledgerv1.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[ledgerv1.AddMemberRequest]) (*connect.Response[ledgerv1.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the server side of splitledger.v1.GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[ledgerv1.CreateGroupRequest]) (*connect.Response[ledgerv1.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[ledgerv1.GetGroupRequest]) (*connect.Response[ledgerv1.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ledgerv1.ListGroupsRequest]) (*connect.Response[ledgerv1.ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[ledgerv1.AddMemberRequest]) (*connect.Response[ledgerv1.AddMemberResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(codecOption))
	return "/" + GroupServiceName + "/", route(map[string]http.Handler{
		GroupServiceCreateGroupProcedure: connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:    connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:  connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceAddMemberProcedure:   connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...),
	})
}
