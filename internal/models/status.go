package models

type PublicationStatus string

const (
	PublicationDraft     PublicationStatus = "draft"
	PublicationPublished PublicationStatus = "published"
)

func StatusOf(a *ArtworkRecord) PublicationStatus {
	if a != nil && a.IsPublished {
		return PublicationPublished
	}

	return PublicationDraft
}
