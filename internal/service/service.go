package service

import (
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Group   GroupService
	Feed    FeedService
	Post    PostService
	Comment CommentService
	Follow  FollowService
	Tables  TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, pageCache cache.Store) *Service {
	feed := NewFeedService(rep.Post, rep.Group, rep.User, rep.Follow, pageCache, cfg.Feed.PostsPerPage)

	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User),
		Group:   NewGroupService(rep.Group),
		Feed:    feed,
		Post:    NewPostService(rep.Post, rep.Group, rep.Comment, storage, feed, cfg),
		Comment: NewCommentService(rep.Post, rep.Comment),
		Follow:  NewFollowService(rep.User, rep.Follow),
		Tables:  NewTablesService(rep.Tables),
	}
}
