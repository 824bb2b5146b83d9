package post

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"required"`
	Author string `json:"author" validate:"required,max=100"`
	Remark string `json:"remark" validate:"max=200"`
}
