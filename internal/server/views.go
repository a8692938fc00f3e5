package server

import (
	"time"

	bookmarkdomain "user-dashboard/backend/internal/bookmark/domain"
	cartdomain "user-dashboard/backend/internal/cart/domain"
	commentdomain "user-dashboard/backend/internal/comment/domain"
	productdomain "user-dashboard/backend/internal/product/domain"
	reviewdomain "user-dashboard/backend/internal/review/domain"
	tododomain "user-dashboard/backend/internal/todo/domain"
	userdomain "user-dashboard/backend/internal/user/domain"
)

// Views are the wire shapes of domain entities. Field names match what the
// existing frontend reads.

type loginRecordView struct {
	IP         string  `json:"ip"`
	Device     string  `json:"device"`
	Location   string  `json:"location"`
	Lat        float64 `json:"lat"`
	Long       float64 `json:"long"`
	Suspicious bool    `json:"suspicious"`
	Timestamp  string  `json:"timestamp"`
}

type userView struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	IsAdmin   bool             `json:"isAdmin"`
	LastLogin *loginRecordView `json:"lastLogin,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

type authView struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type todoView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Age         int       `json:"age"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Experience  int       `json:"experience"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type commentAuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type commentView struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Author    commentAuthorView `json:"author"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type productView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	ReviewsCount int       `json:"reviewsCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type reviewView struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type cartItemView struct {
	Product  *productView `json:"product"`
	Quantity int          `json:"quantity"`
}

type cartView struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Items  []cartItemView `json:"items"`
}

type bookmarkView struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Product   *productView `json:"product"`
	CreatedAt time.Time    `json:"createdAt"`
}

type userBookmarksView struct {
	UserID    string         `json:"userId"`
	Username  string         `json:"username"`
	Bookmarks []bookmarkView `json:"bookmarks"`
}

type searchProductsView struct {
	Products []productView `json:"products"`
	Message  string        `json:"message"`
}

func toUserView(u *userdomain.User) userView {
	v := userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
	if u.LastLogin != nil {
		v.LastLogin = &loginRecordView{
			IP:         u.LastLogin.IP,
			Device:     u.LastLogin.Device,
			Location:   u.LastLogin.Location,
			Lat:        u.LastLogin.Lat,
			Long:       u.LastLogin.Long,
			Suspicious: u.LastLogin.Suspicious,
			Timestamp:  u.LastLogin.Timestamp,
		}
	}
	return v
}

func toTodoView(t *tododomain.Todo) todoView {
	return todoView{
		ID:          t.ID,
		Name:        t.Name,
		Title:       t.Title,
		Age:         t.Age,
		Bio:         t.Bio,
		Company:     t.Company,
		Experience:  t.Experience,
		Description: t.Description,
		Address:     t.Address,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoViews(todos []*tododomain.Todo) []todoView {
	out := make([]todoView, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoView(t))
	}
	return out
}

func toCommentView(c *commentdomain.Comment) commentView {
	return commentView{
		ID:      c.ID,
		Content: c.Content,
		Author: commentAuthorView{
			ID:       c.AuthorID,
			Username: c.AuthorUsername,
			Email:    c.AuthorEmail,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentViews(comments []*commentdomain.Comment) []commentView {
	out := make([]commentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentView(c))
	}
	return out
}

func toProductView(p *productdomain.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Image:        p.Image,
		ReviewsCount: p.ReviewsCount,
		CreatedAt:    p.CreatedAt,
	}
}

func toProductViews(products []*productdomain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

func toReviewView(r *reviewdomain.Review) reviewView {
	return reviewView{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Username:  r.AuthorUsername,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toCartView(c *cartdomain.Cart) cartView {
	items := make([]cartItemView, 0, len(c.Items))
	for _, item := range c.Items {
		var p *productView
		if item.Product != nil {
			pv := toProductView(item.Product)
			p = &pv
		}
		items = append(items, cartItemView{Product: p, Quantity: item.Quantity})
	}
	return cartView{ID: c.ID, UserID: c.UserID, Items: items}
}

func toBookmarkView(b *bookmarkdomain.Bookmark) bookmarkView {
	v := bookmarkView{ID: b.ID, UserID: b.UserID, CreatedAt: b.CreatedAt}
	if b.Product != nil {
		pv := toProductView(b.Product)
		v.Product = &pv
	}
	return v
}

func toBookmarkViews(bookmarks []*bookmarkdomain.Bookmark) []bookmarkView {
	out := make([]bookmarkView, 0, len(bookmarks))
	for _, b := range bookmarks {
		out = append(out, toBookmarkView(b))
	}
	return out
}
