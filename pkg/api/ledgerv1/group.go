package ledgerv1

type Member struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	JoinedAt    int64  `json:"joined_at"`
}

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   int64     `json:"created_at"`
	Members     []*Member `json:"members"`
}

// CreateGroupRequest creates a group owned by the caller.
// The caller is always a member; MemberIDs adds others.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	MemberIDs   []string `json:"member_ids,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// AddMemberRequest adds a user, identified by ID or email, to a group.
type AddMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}
