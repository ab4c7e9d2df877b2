package models

// PostsTable is the DynamoDB table name for feed posts
const PostsTable = "Posts"

// Comment is embedded in a post's comment list.
type Comment struct {
	UserID    string `dynamodbav:"user_id" json:"user_id"`
	Comment   string `dynamodbav:"comment" json:"comment"`
	Timestamp string `dynamodbav:"timestamp" json:"timestamp"`
}

// Post defines the structure for feed posts.
type Post struct {
	ID        string    `dynamodbav:"postId" json:"_id"`
	OwnerID   string    `dynamodbav:"owner_id" json:"owner_id"`
	Content   string    `dynamodbav:"content" json:"content"`
	ImageURL  string    `dynamodbav:"image_url,omitempty" json:"image_url,omitempty"`
	Likes     []string  `dynamodbav:"likes" json:"likes"`
	Comments  []Comment `dynamodbav:"comments" json:"comments"`
	CreatedAt string    `dynamodbav:"created_at" json:"created_at"`
}

// PostOwner is the denormalized owner block attached to serialized posts.
type PostOwner struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
}

// PostView is a post with its owner resolved for the feed.
type PostView struct {
	Post
	Owner PostOwner `json:"owner"`
}
