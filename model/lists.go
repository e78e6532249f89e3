package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// StringList marshals a string slice into a JSON column value. An empty slice
// is stored as [] rather than NULL.
func StringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

func decodeStringList(raw datatypes.JSON) []string {
	var items []string
	if len(raw) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	return items
}

// TechTagList decodes the post's tag column.
func (p *Post) TechTagList() []string { return decodeStringList(p.TechTags) }

// ImageUrlList decodes the post's image reference column.
func (p *Post) ImageUrlList() []string { return decodeStringList(p.ImageUrls) }

// SkillList decodes the profile's skills column.
func (p *Profile) SkillList() []string { return decodeStringList(p.Skills) }
