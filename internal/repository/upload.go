package repository

import (
	"reshort/internal/db"
	"reshort/internal/model"
	"time"
)

type UploadRepository struct{}

func NewUploadRepository() *UploadRepository {
	return &UploadRepository{}
}

func (r *UploadRepository) Save(job model.Job, outcome model.JobOutcome, publishAt time.Time) error {
	sourceRef := job.SourceID
	if job.Type == model.JobLocal {
		sourceRef = job.SourcePath
	}

	upload := model.Upload{
		Title:      outcome.Title,
		RemoteID:   outcome.RemoteID,
		SourceType: job.Type,
		SourceRef:  sourceRef,
		PublishAt:  publishAt,
		UploadedAt: time.Now(),
	}

	return db.DB.Create(&upload).Error
}

func (r *UploadRepository) GetRecent(limit int) ([]model.Upload, error) {
	var uploads []model.Upload
	result := db.DB.
		Order("uploaded_at desc").
		Limit(limit).
		Find(&uploads)

	return uploads, result.Error
}

func (r *UploadRepository) Count() (int64, error) {
	var count int64
	return count, db.DB.Model(&model.Upload{}).Count(&count).Error
}
