package handler

// Init binds every handler to the shared connection.
// Must be called after db.Init.
func Init() {
	Page = Page.WithTx(nil)
	Section = Section.WithTx(nil)
	Link = Link.WithTx(nil)
	User = User.WithTx(nil)
	Role = Role.WithTx(nil)
	Group = Group.WithTx(nil)
	Access = Access.WithTx(nil)
	Import = Import.WithTx(nil)
}
