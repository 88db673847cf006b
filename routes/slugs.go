package routes

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// uniqueSlug derives a slug from name and, if another row of the same
// model already holds it, appends -2, -3, ... until a free one is found.
// excludeID lets updates keep their own slug.
func uniqueSlug(tx *gorm.DB, model interface{}, name string, excludeID uint) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		query := tx.Model(model).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
