package service

import (
	"strings"

	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/database/model"
	"github.com/khoshimi/Pupupu/logger"
)

// TagService resolves free-text tag names to canonical tag rows.
type TagService struct{}

// ParseNames splits a comma-joined tag string into trimmed, non-empty names.
func (s *TagService) ParseNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Resolve maps names to tag rows, creating missing ones. Matching is exact
// and case-sensitive; duplicate names collapse to one. When two requests race
// on creating the same name, the unique constraint decides and the loser
// re-fetches the winner's row.
func (s *TagService) Resolve(names []string) ([]model.Tag, error) {
	db := database.GetDB()

	seen := make(map[string]bool, len(names))
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		tag := model.Tag{}
		err := db.Where("name = ?", name).First(&tag).Error
		if database.IsNotFound(err) {
			tag = model.Tag{Name: name}
			err = db.Create(&tag).Error
			if database.IsUniqueConstraint(err) {
				logger.Debugf("lost tag creation race for %q, re-fetching", name)
				err = db.Where("name = ?", name).First(&tag).Error
			}
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// TagNames returns the flattened tag names of a work, oldest association
// first.
func (s *TagService) TagNames(artId int) ([]string, error) {
	db := database.GetDB()

	names := make([]string, 0)
	err := db.Table("arttags").
		Select("tags.name").
		Joins("join tags on tags.id_tag = arttags.id_tag").
		Where("arttags.id_art = ?", artId).
		Order("arttags.id").
		Scan(&names).
		Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
