package endpoints

import (
	"context"

	"kbclient/internal/apierr"
	"kbclient/internal/model"
)

type memberEnvelope struct {
	Member model.Member `json:"member"`
}

func memberPath(spaceID, rest string) string {
	return spacePath(spaceID, "/members"+rest)
}

// ListMembers lists the members of a space.
func ListMembers(ctx context.Context, d Doer, spaceID string, p ListParams) (model.Page[model.Member], error) {
	if err := preflight("members.list", p); err != nil {
		return model.Page[model.Member]{}, err
	}
	var page dataPage[model.Member]
	if err := d.Get(ctx, "members.list", withQuery(memberPath(spaceID, ""), p.query()), &page); err != nil {
		return model.Page[model.Member]{}, err
	}
	return page.toPage(), nil
}

// GetMember fetches one member by id.
func GetMember(ctx context.Context, d Doer, spaceID, id string) (model.Member, error) {
	var env memberEnvelope
	if err := d.Get(ctx, "members.get", memberPath(spaceID, "/"+id), &env); err != nil {
		return model.Member{}, err
	}
	return env.Member, nil
}

// InviteMember, RemoveMember, and UpdateMemberRole exist in the service
// but have no implementation in the original client this was ported
// from (spec.md §9 Open Questions); they are left as explicit stubs
// rather than guessed at.
func InviteMember(ctx context.Context, d Doer, spaceID, identity string) (model.Member, error) {
	return model.Member{}, &apierr.BadRequest{Operation: "members.invite", Details: "unimplemented: no source operation to port"}
}

func RemoveMember(ctx context.Context, d Doer, spaceID, id string) error {
	return &apierr.BadRequest{Operation: "members.remove", Details: "unimplemented: no source operation to port"}
}

func UpdateMemberRole(ctx context.Context, d Doer, spaceID, id string, role model.MemberRole) (model.Member, error) {
	return model.Member{}, &apierr.BadRequest{Operation: "members.update_role", Details: "unimplemented: no source operation to port"}
}
