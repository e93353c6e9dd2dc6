package service

import (
	"strconv"
	"time"

	"github.com/khoshimi/Pupupu/caching"
	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/database/model"
	"github.com/khoshimi/Pupupu/gallery"
	"github.com/khoshimi/Pupupu/logger"
	"github.com/khoshimi/Pupupu/web/entity"
)

// WorkService handles creation, listing and deletion of posted works.
type WorkService struct {
	tagService     TagService
	storage        StorageService
	settingService SettingService
}

// artRow carries a work row joined with its owner's email.
type artRow struct {
	Id          int       `gorm:"column:id_art"`
	UserId      int       `gorm:"column:id_users"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	ImagePath   string    `gorm:"column:image_path"`
	Gallery     string    `gorm:"column:gallery"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UserEmail   string    `gorm:"column:user_email"`
}

func (r *artRow) art() *model.Art {
	return &model.Art{
		Id:          r.Id,
		UserId:      r.UserId,
		Title:       r.Title,
		Description: r.Description,
		ImagePath:   r.ImagePath,
		Gallery:     r.Gallery,
		CreatedAt:   r.CreatedAt,
	}
}

// Create validates and persists a new work, resolving its tags through the
// tag service. Duplicate tag names collapse to a single association. The
// category is derived from the gallery code when the code is a seeded one.
func (s *WorkService) Create(userId int, title, description string, tagNames []string, galleryCode, imagePath string) (*model.Art, error) {
	if userId <= 0 {
		return nil, newValidationError("user id is required")
	}
	if title == "" || description == "" || galleryCode == "" || len(tagNames) == 0 {
		return nil, newValidationError("title, description, tags and gallery are required")
	}

	tags, err := s.tagService.Resolve(tagNames)
	if err != nil {
		return nil, err
	}

	art := &model.Art{
		UserId:      userId,
		Title:       title,
		Description: description,
		ImagePath:   imagePath,
		Gallery:     galleryCode,
	}

	if name, ok := gallery.CategoryFor(galleryCode); ok {
		category := model.Category{}
		err := database.GetDB().Where("name = ?", name).First(&category).Error
		if err == nil {
			art.CategoryId = &category.Id
		} else if !database.IsNotFound(err) {
			return nil, err
		}
	}

	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = tx.Create(art).Error; err != nil {
		return nil, err
	}
	for _, tag := range tags {
		link := model.ArtTag{ArtId: art.Id, TagId: tag.Id}
		if err = tx.Where(link).FirstOrCreate(&link).Error; err != nil {
			return nil, err
		}
	}
	if err = tx.Commit().Error; err != nil {
		return nil, err
	}

	// Invalidate only once the rows are visible, so a concurrent listing
	// cannot re-cache the pre-commit state.
	caching.Delete(caching.KeyGalleryPrefix + galleryCode)
	logger.Infof("user %d posted work %d to gallery %q", userId, art.Id, galleryCode)
	return art, nil
}

// ListByUser returns the user's works, newest first.
func (s *WorkService) ListByUser(userId int) ([]entity.WorkView, error) {
	db := database.GetDB()

	arts := make([]model.Art, 0)
	err := db.Model(model.Art{}).
		Where("id_users = ?", userId).
		Order("created_at DESC, id_art DESC").
		Find(&arts).
		Error
	if err != nil {
		return nil, err
	}

	baseURL, err := s.settingService.GetBaseURL()
	if err != nil {
		return nil, err
	}

	views := make([]entity.WorkView, 0, len(arts))
	for i := range arts {
		tags, err := s.tagService.TagNames(arts[i].Id)
		if err != nil {
			return nil, err
		}
		views = append(views, entity.NewWorkView(&arts[i], tags, baseURL))
	}
	return views, nil
}

// ListByGallery returns the gallery's works annotated with the owner's email,
// newest first. Results are served through the TTL cache.
func (s *WorkService) ListByGallery(galleryCode string) ([]entity.WorkView, error) {
	views := make([]entity.WorkView, 0)
	err := caching.GetOrSet(
		caching.KeyGalleryPrefix+galleryCode,
		&views,
		caching.TTLGallery,
		func() (any, error) { return s.listByGallery(galleryCode) },
	)
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *WorkService) listByGallery(galleryCode string) ([]entity.WorkView, error) {
	db := database.GetDB()

	rows := make([]artRow, 0)
	err := db.Table("art").
		Select("art.*, users.email AS user_email").
		Joins("left join users on users.id_users = art.id_users").
		Where("art.gallery = ?", galleryCode).
		Order("art.created_at DESC, art.id_art DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	baseURL, err := s.settingService.GetBaseURL()
	if err != nil {
		return nil, err
	}

	views := make([]entity.WorkView, 0, len(rows))
	for i := range rows {
		tags, err := s.tagService.TagNames(rows[i].Id)
		if err != nil {
			return nil, err
		}
		view := entity.NewWorkView(rows[i].art(), tags, baseURL)
		view.UserEmail = rows[i].UserEmail
		views = append(views, view)
	}
	return views, nil
}

// GetById returns a single work annotated with the owner's email.
func (s *WorkService) GetById(id int) (*entity.WorkView, error) {
	view := &entity.WorkView{}
	err := caching.GetOrSet(
		caching.KeyWorkPrefix+strconv.Itoa(id),
		view,
		caching.TTLWork,
		func() (any, error) { return s.getById(id) },
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *WorkService) getById(id int) (*entity.WorkView, error) {
	db := database.GetDB()

	row := artRow{}
	err := db.Table("art").
		Select("art.*, users.email AS user_email").
		Joins("left join users on users.id_users = art.id_users").
		Where("art.id_art = ?", id).
		Scan(&row).
		Error
	if err != nil {
		return nil, err
	}
	if row.Id == 0 {
		return nil, ErrNotFound
	}

	baseURL, err := s.settingService.GetBaseURL()
	if err != nil {
		return nil, err
	}
	tags, err := s.tagService.TagNames(row.Id)
	if err != nil {
		return nil, err
	}

	view := entity.NewWorkView(row.art(), tags, baseURL)
	view.UserEmail = row.UserEmail
	return &view, nil
}

// Delete removes a work: tag associations first, then the image file, then
// the row itself, so a partial failure never leaves a join row pointing at a
// deleted work. A missing image file is not an error.
func (s *WorkService) Delete(id int) error {
	db := database.GetDB()

	art := model.Art{}
	err := db.Model(model.Art{}).Where("id_art = ?", id).First(&art).Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	if err := db.Where("id_art = ?", id).Delete(model.ArtTag{}).Error; err != nil {
		return err
	}

	if art.ImagePath != "" {
		s.storage.Remove(art.ImagePath)
	}

	if err := db.Delete(&art).Error; err != nil {
		return err
	}

	caching.Delete(caching.KeyGalleryPrefix + art.Gallery)
	caching.Delete(caching.KeyWorkPrefix + strconv.Itoa(id))
	logger.Infof("deleted work %d from gallery %q", id, art.Gallery)
	return nil
}

// CountWorks returns the number of posted works.
func (s *WorkService) CountWorks() (int64, error) {
	var count int64
	err := database.GetDB().Model(model.Art{}).Count(&count).Error
	return count, err
}

// ReferencedUploads returns every upload path referenced by a user avatar or
// a work image, keyed by the bare filename. Used by the orphan sweep job.
func (s *WorkService) ReferencedUploads() (map[string]bool, error) {
	db := database.GetDB()

	paths := make([]string, 0)
	err := db.Model(model.Art{}).
		Where("image_path <> ''").
		Pluck("image_path", &paths).
		Error
	if err != nil {
		return nil, err
	}

	avatars := make([]string, 0)
	err = db.Model(model.User{}).
		Where("avatar_path <> ''").
		Pluck("avatar_path", &avatars).
		Error
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]bool, len(paths)+len(avatars))
	for _, p := range append(paths, avatars...) {
		referenced[baseName(p)] = true
	}
	return referenced, nil
}

func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
