package youtube

import (
	"fmt"

	"google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

// toRecord converts a comment thread's top-level comment.
// Threads without a top-level comment are rejected.
func toRecord(v video, thread *youtube.CommentThread) (domain.Record, bool) {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
		return domain.Record{}, false
	}
	comment := thread.Snippet.TopLevelComment

	rec := domain.Record{
		Platform:  domain.PlatformYouTube,
		PostType:  domain.PostComment,
		NativeID:  comment.Id,
		ParentID:  v.ID,
		SourceURL: commentURL(v.ID, comment.Id),
		Metadata: map[string]any{
			"video_id":    v.ID,
			"video_title": v.Title,
			"likeCount":   int64(0),
			"publishedAt": nil,
		},
	}

	if s := comment.Snippet; s != nil {
		rec.AuthorHandle = s.AuthorDisplayName
		rec.Text = s.TextDisplay
		rec.Metadata["likeCount"] = s.LikeCount
		if s.PublishedAt != "" {
			rec.Metadata["publishedAt"] = s.PublishedAt
		}
	}
	return rec, true
}

func commentURL(videoID, commentID string) string {
	if commentID == "" {
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&lc=%s", videoID, commentID)
}
