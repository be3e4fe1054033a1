package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/insight-scraper/internal/connectors/instagram"
	"github.com/custodia-labs/insight-scraper/internal/connectors/playstore"
	"github.com/custodia-labs/insight-scraper/internal/connectors/reddit"
	"github.com/custodia-labs/insight-scraper/internal/connectors/twitter"
	"github.com/custodia-labs/insight-scraper/internal/connectors/youtube"
	"github.com/custodia-labs/insight-scraper/internal/core/domain"
)

var instagramCmd = &cobra.Command{
	Use:   "instagram",
	Short: "Ingest comments from Instagram profiles",
	Long: `Fetches the latest posts of each profile and the comments on them.
A session id (INSTAGRAM_SESSION_ID) is optional but widens what the public
endpoints return.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		profiles, _ := cmd.Flags().GetString("profiles")
		posts, _ := cmd.Flags().GetInt("max-posts")
		comments, _ := cmd.Flags().GetInt("max-comments")
		return runIngest(cmd, domain.PlatformInstagram, profiles,
			domain.Bounds{MaxItems: posts, MaxChildren: comments}, "comments")
	},
}

var playstoreCmd = &cobra.Command{
	Use:   "playstore",
	Short: "Ingest reviews of Google Play apps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		apps, _ := cmd.Flags().GetString("app")
		reviews, _ := cmd.Flags().GetInt("max-reviews")
		return runIngest(cmd, domain.PlatformPlayStore, apps,
			domain.Bounds{MaxItems: 1, MaxChildren: reviews}, "reviews")
	},
}

var redditCmd = &cobra.Command{
	Use:   "reddit",
	Short: "Ingest comments from hot posts of subreddits",
	Long: `Fetches hot posts of each subreddit and their full comment trees.
Requires REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET of a script app.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		subs, _ := cmd.Flags().GetString("subreddits")
		limit, _ := cmd.Flags().GetInt("limit")
		comments, _ := cmd.Flags().GetInt("max-comments")
		return runIngest(cmd, domain.PlatformReddit, subs,
			domain.Bounds{MaxItems: limit, MaxChildren: comments}, "comments")
	},
}

var twitterCmd = &cobra.Command{
	Use:   "twitter",
	Short: "Ingest recent tweets matching search queries",
	Long: `Searches tweets from the last seven days. Requires TWITTER_BEARER_TOKEN.
Queries use the API v2 search syntax, e.g. "astrology lang:en -is:retweet".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, _ := cmd.Flags().GetString("query")
		tweets, _ := cmd.Flags().GetInt("max-tweets")
		return runIngest(cmd, domain.PlatformTwitter, query,
			domain.Bounds{MaxItems: tweets}, "tweets")
	},
}

var youtubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Ingest comments from videos matching search queries",
	Long:  `Searches videos for each query and fetches their top-level comments. Requires YOUTUBE_API_KEY.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, _ := cmd.Flags().GetString("query")
		videos, _ := cmd.Flags().GetInt("max-videos")
		comments, _ := cmd.Flags().GetInt("max-comments")
		return runIngest(cmd, domain.PlatformYouTube, query,
			domain.Bounds{MaxItems: videos, MaxChildren: comments}, "comments")
	},
}

func init() {
	instagramCmd.Flags().String("profiles", "", "comma separated profile names")
	instagramCmd.Flags().Int("max-posts", instagram.DefaultMaxPosts, "posts per profile")
	instagramCmd.Flags().Int("max-comments", instagram.DefaultMaxComments, "comments per post")
	_ = instagramCmd.MarkFlagRequired("profiles")

	playstoreCmd.Flags().String("app", "", "comma separated app ids, e.g. com.example.app")
	playstoreCmd.Flags().Int("max-reviews", playstore.DefaultMaxReviews, "reviews per app")
	_ = playstoreCmd.MarkFlagRequired("app")

	redditCmd.Flags().String("subreddits", "", "comma separated subreddit names")
	redditCmd.Flags().Int("limit", reddit.DefaultMaxPosts, "hot posts per subreddit")
	redditCmd.Flags().Int("max-comments", reddit.DefaultMaxComments, "comments per post")
	_ = redditCmd.MarkFlagRequired("subreddits")

	twitterCmd.Flags().String("query", "", "comma separated search queries")
	twitterCmd.Flags().Int("max-tweets", twitter.DefaultMaxTweets, "tweets per query")
	_ = twitterCmd.MarkFlagRequired("query")

	youtubeCmd.Flags().String("query", "", "comma separated search queries")
	youtubeCmd.Flags().Int("max-videos", youtube.DefaultMaxVideos, "videos per query")
	youtubeCmd.Flags().Int("max-comments", youtube.DefaultMaxComments, "comments per video")
	_ = youtubeCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(instagramCmd, playstoreCmd, redditCmd, twitterCmd, youtubeCmd)
}
