package endpoints

import (
	"context"

	"kbclient/internal/model"
)

type templateEnvelope struct {
	Template model.Template `json:"template"`
}

func templatePath(spaceID, typeID, rest string) string {
	return typePath(spaceID, "/"+typeID+"/templates"+rest)
}

// ListTemplates lists the templates defined for a type. Templates are
// read-only from this client's perspective (spec.md §4.3): no create,
// update, or delete operation exists for them.
func ListTemplates(ctx context.Context, d Doer, spaceID, typeID string, p ListParams) (model.Page[model.Template], error) {
	if err := preflight("templates.list", p); err != nil {
		return model.Page[model.Template]{}, err
	}
	var page dataPage[model.Template]
	if err := d.Get(ctx, "templates.list", withQuery(templatePath(spaceID, typeID, ""), p.query()), &page); err != nil {
		return model.Page[model.Template]{}, err
	}
	return page.toPage(), nil
}

// GetTemplate fetches one template by id.
func GetTemplate(ctx context.Context, d Doer, spaceID, typeID, id string) (model.Template, error) {
	var env templateEnvelope
	if err := d.Get(ctx, "templates.get", templatePath(spaceID, typeID, "/"+id), &env); err != nil {
		return model.Template{}, err
	}
	return env.Template, nil
}
