package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cms-service/internal/model"
	"cms-service/internal/oauth"
)

// In-memory repository fakes shared by the service tests.

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for id := uint(1); id < m.nextID; id++ {
		if user, ok := m.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	if user, ok := m.users[id]; ok {
		user.Role = role
	}
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	if user, ok := m.users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}

func (m *mockUserRepo) UpdateCurrentSite(_ context.Context, id uint, siteID *uint) error {
	if user, ok := m.users[id]; ok {
		user.CurrentSiteID = siteID
	}
	return nil
}

type mockInviteRepo struct {
	invites map[uint]*model.Invite
	nextID  uint
}

func newMockInviteRepo() *mockInviteRepo {
	return &mockInviteRepo{invites: make(map[uint]*model.Invite), nextID: 1}
}

func (m *mockInviteRepo) Create(_ context.Context, invite *model.Invite) error {
	invite.ID = m.nextID
	m.nextID++
	copied := *invite
	m.invites[invite.ID] = &copied
	return nil
}

func (m *mockInviteRepo) GetByID(_ context.Context, id uint) (*model.Invite, error) {
	invite, ok := m.invites[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *invite
	return &copied, nil
}

func (m *mockInviteRepo) GetLiveByEmail(_ context.Context, email string, now time.Time) (*model.Invite, error) {
	for _, invite := range m.invites {
		if invite.Email == email && invite.IsLive(now) {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInviteRepo) List(_ context.Context) ([]model.Invite, error) {
	out := []model.Invite{}
	for id := uint(1); id < m.nextID; id++ {
		if invite, ok := m.invites[id]; ok {
			out = append(out, *invite)
		}
	}
	return out, nil
}

func (m *mockInviteRepo) UpdateRole(_ context.Context, id uint, role string) error {
	if invite, ok := m.invites[id]; ok {
		invite.Role = role
	}
	return nil
}

func (m *mockInviteRepo) Delete(_ context.Context, id uint) error {
	delete(m.invites, id)
	return nil
}

func (m *mockInviteRepo) Consume(_ context.Context, id uint, at time.Time) (bool, error) {
	invite, ok := m.invites[id]
	if !ok || invite.IsUsed {
		return false, nil
	}
	invite.IsUsed = true
	invite.UsedAt = &at
	return true, nil
}

type memberKey struct {
	siteID uint
	userID uint
}

type mockSiteRepo struct {
	sites   map[uint]*model.Site
	members map[memberKey]bool
	nextID  uint
}

func newMockSiteRepo() *mockSiteRepo {
	return &mockSiteRepo{
		sites:   make(map[uint]*model.Site),
		members: make(map[memberKey]bool),
		nextID:  1,
	}
}

func (m *mockSiteRepo) addSite(name string) *model.Site {
	site := &model.Site{ID: m.nextID, Name: name}
	m.nextID++
	m.sites[site.ID] = site
	return site
}

func (m *mockSiteRepo) Create(_ context.Context, site *model.Site) error {
	site.ID = m.nextID
	m.nextID++
	copied := *site
	m.sites[site.ID] = &copied
	return nil
}

func (m *mockSiteRepo) GetByID(_ context.Context, id uint) (*model.Site, error) {
	site, ok := m.sites[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *site
	return &copied, nil
}

func (m *mockSiteRepo) List(_ context.Context) ([]model.Site, error) {
	out := []model.Site{}
	for id := uint(1); id < m.nextID; id++ {
		if site, ok := m.sites[id]; ok {
			out = append(out, *site)
		}
	}
	return out, nil
}

func (m *mockSiteRepo) ListForUser(_ context.Context, userID uint) ([]model.Site, error) {
	out := []model.Site{}
	for id := uint(1); id < m.nextID; id++ {
		site, ok := m.sites[id]
		if ok && m.members[memberKey{siteID: id, userID: userID}] {
			out = append(out, *site)
		}
	}
	return out, nil
}

func (m *mockSiteRepo) Update(_ context.Context, site *model.Site) error {
	copied := *site
	m.sites[site.ID] = &copied
	return nil
}

func (m *mockSiteRepo) Delete(_ context.Context, id uint) error {
	delete(m.sites, id)
	for key := range m.members {
		if key.siteID == id {
			delete(m.members, key)
		}
	}
	return nil
}

func (m *mockSiteRepo) IsMember(_ context.Context, siteID, userID uint) (bool, error) {
	return m.members[memberKey{siteID: siteID, userID: userID}], nil
}

func (m *mockSiteRepo) AddMember(_ context.Context, siteID, userID uint) error {
	key := memberKey{siteID: siteID, userID: userID}
	if m.members[key] {
		return gorm.ErrDuplicatedKey
	}
	m.members[key] = true
	return nil
}

func (m *mockSiteRepo) RemoveMember(_ context.Context, siteID, userID uint) (bool, error) {
	key := memberKey{siteID: siteID, userID: userID}
	if !m.members[key] {
		return false, nil
	}
	delete(m.members, key)
	return true, nil
}

func (m *mockSiteRepo) ListMembers(_ context.Context, siteID uint) ([]model.SiteMember, error) {
	out := []model.SiteMember{}
	for key := range m.members {
		if key.siteID == siteID {
			out = append(out, model.SiteMember{SiteID: key.siteID, UserID: key.userID})
		}
	}
	return out, nil
}

type mockFeatureRepo struct {
	features map[uint]*model.SiteFeature
	nextID   uint
}

func newMockFeatureRepo() *mockFeatureRepo {
	return &mockFeatureRepo{features: make(map[uint]*model.SiteFeature), nextID: 1}
}

func (m *mockFeatureRepo) enable(siteID uint, name string) *model.SiteFeature {
	feature := &model.SiteFeature{ID: m.nextID, SiteID: siteID, Feature: name, IsEnabled: true}
	m.nextID++
	m.features[feature.ID] = feature
	return feature
}

func (m *mockFeatureRepo) Create(_ context.Context, feature *model.SiteFeature) error {
	for _, existing := range m.features {
		if existing.SiteID == feature.SiteID && existing.Feature == feature.Feature {
			return gorm.ErrDuplicatedKey
		}
	}
	feature.ID = m.nextID
	m.nextID++
	copied := *feature
	m.features[feature.ID] = &copied
	return nil
}

func (m *mockFeatureRepo) GetByID(_ context.Context, id uint) (*model.SiteFeature, error) {
	feature, ok := m.features[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *feature
	return &copied, nil
}

func (m *mockFeatureRepo) GetBySiteAndName(_ context.Context, siteID uint, name string) (*model.SiteFeature, error) {
	for _, feature := range m.features {
		if feature.SiteID == siteID && feature.Feature == name {
			copied := *feature
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeatureRepo) ListBySite(_ context.Context, siteID uint) ([]model.SiteFeature, error) {
	out := []model.SiteFeature{}
	for id := uint(1); id < m.nextID; id++ {
		if feature, ok := m.features[id]; ok && feature.SiteID == siteID {
			out = append(out, *feature)
		}
	}
	return out, nil
}

func (m *mockFeatureRepo) Update(_ context.Context, feature *model.SiteFeature) error {
	copied := *feature
	m.features[feature.ID] = &copied
	return nil
}

func (m *mockFeatureRepo) Delete(_ context.Context, id uint) error {
	delete(m.features, id)
	return nil
}

type mockPageRepo struct {
	pages  map[uint]*model.Page
	nextID uint
}

func newMockPageRepo() *mockPageRepo {
	return &mockPageRepo{pages: make(map[uint]*model.Page), nextID: 1}
}

func (m *mockPageRepo) Create(_ context.Context, page *model.Page) error {
	page.ID = m.nextID
	m.nextID++
	copied := *page
	m.pages[page.ID] = &copied
	return nil
}

func (m *mockPageRepo) GetByID(_ context.Context, siteID, id uint) (*model.Page, error) {
	page, ok := m.pages[id]
	if !ok || page.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *page
	return &copied, nil
}

func (m *mockPageRepo) GetBySlug(_ context.Context, siteID uint, slug string) (*model.Page, error) {
	for _, page := range m.pages {
		if page.SiteID == siteID && page.Slug == slug {
			copied := *page
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPageRepo) ListBySite(_ context.Context, siteID uint, kind string) ([]model.Page, error) {
	out := []model.Page{}
	for id := uint(1); id < m.nextID; id++ {
		if page, ok := m.pages[id]; ok && page.SiteID == siteID && page.Kind == kind {
			out = append(out, *page)
		}
	}
	return out, nil
}

func (m *mockPageRepo) Update(_ context.Context, page *model.Page) error {
	copied := *page
	m.pages[page.ID] = &copied
	return nil
}

func (m *mockPageRepo) Delete(_ context.Context, siteID, id uint) (bool, error) {
	page, ok := m.pages[id]
	if !ok || page.SiteID != siteID {
		return false, nil
	}
	delete(m.pages, id)
	return true, nil
}

type mockContactRepo struct {
	forms       map[uint]*model.ContactForm // keyed by site id
	submissions map[uint]*model.ContactSubmission
	nextID      uint
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{
		forms:       make(map[uint]*model.ContactForm),
		submissions: make(map[uint]*model.ContactSubmission),
		nextID:      1,
	}
}

func (m *mockContactRepo) CreateForm(_ context.Context, form *model.ContactForm) error {
	form.ID = m.nextID
	m.nextID++
	copied := *form
	m.forms[form.SiteID] = &copied
	return nil
}

func (m *mockContactRepo) GetFormBySite(_ context.Context, siteID uint) (*model.ContactForm, error) {
	form, ok := m.forms[siteID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *form
	return &copied, nil
}

func (m *mockContactRepo) UpdateForm(_ context.Context, form *model.ContactForm) error {
	copied := *form
	m.forms[form.SiteID] = &copied
	return nil
}

func (m *mockContactRepo) CreateSubmission(_ context.Context, submission *model.ContactSubmission) error {
	submission.ID = m.nextID
	m.nextID++
	copied := *submission
	m.submissions[submission.ID] = &copied
	return nil
}

func (m *mockContactRepo) GetSubmission(_ context.Context, siteID, id uint) (*model.ContactSubmission, error) {
	submission, ok := m.submissions[id]
	if !ok || submission.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *submission
	return &copied, nil
}

func (m *mockContactRepo) ListSubmissions(_ context.Context, siteID uint, includeArchived bool) ([]model.ContactSubmission, error) {
	out := []model.ContactSubmission{}
	for id := uint(1); id < m.nextID; id++ {
		submission, ok := m.submissions[id]
		if !ok || submission.SiteID != siteID {
			continue
		}
		if submission.IsArchived && !includeArchived {
			continue
		}
		out = append(out, *submission)
	}
	return out, nil
}

func (m *mockContactRepo) UpdateSubmissionFlags(_ context.Context, siteID, id uint, isRead, isArchived *bool) (bool, error) {
	submission, ok := m.submissions[id]
	if !ok || submission.SiteID != siteID {
		return false, nil
	}
	if isRead != nil {
		submission.IsRead = *isRead
	}
	if isArchived != nil {
		submission.IsArchived = *isArchived
	}
	return true, nil
}

func (m *mockContactRepo) DeleteSubmission(_ context.Context, siteID, id uint) (bool, error) {
	submission, ok := m.submissions[id]
	if !ok || submission.SiteID != siteID {
		return false, nil
	}
	delete(m.submissions, id)
	return true, nil
}

type statKey struct {
	channelID uint
	name      string
}

type mockSocialRepo struct {
	channels map[uint]*model.SocialMediaChannel
	stats    map[statKey]*model.SocialMediaChannelStat
	nextID   uint
}

func newMockSocialRepo() *mockSocialRepo {
	return &mockSocialRepo{
		channels: make(map[uint]*model.SocialMediaChannel),
		stats:    make(map[statKey]*model.SocialMediaChannelStat),
		nextID:   1,
	}
}

func (m *mockSocialRepo) CreateChannel(_ context.Context, channel *model.SocialMediaChannel) error {
	channel.ID = m.nextID
	m.nextID++
	copied := *channel
	m.channels[channel.ID] = &copied
	return nil
}

func (m *mockSocialRepo) GetChannel(_ context.Context, siteID, id uint) (*model.SocialMediaChannel, error) {
	channel, ok := m.channels[id]
	if !ok || channel.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *channel
	stats, _ := m.ListStats(context.Background(), id)
	copied.Stats = stats
	return &copied, nil
}

func (m *mockSocialRepo) ListChannels(_ context.Context, siteID uint) ([]model.SocialMediaChannel, error) {
	out := []model.SocialMediaChannel{}
	for id := uint(1); id < m.nextID; id++ {
		channel, ok := m.channels[id]
		if !ok || channel.SiteID != siteID {
			continue
		}
		copied := *channel
		stats, _ := m.ListStats(context.Background(), id)
		copied.Stats = stats
		out = append(out, copied)
	}
	return out, nil
}

func (m *mockSocialRepo) UpdateChannel(_ context.Context, channel *model.SocialMediaChannel) error {
	copied := *channel
	m.channels[channel.ID] = &copied
	return nil
}

func (m *mockSocialRepo) DeleteChannel(_ context.Context, siteID, id uint) (bool, error) {
	channel, ok := m.channels[id]
	if !ok || channel.SiteID != siteID {
		return false, nil
	}
	delete(m.channels, id)
	for key := range m.stats {
		if key.channelID == id {
			delete(m.stats, key)
		}
	}
	return true, nil
}

func (m *mockSocialRepo) ListStats(_ context.Context, channelID uint) ([]model.SocialMediaChannelStat, error) {
	out := []model.SocialMediaChannelStat{}
	for key, stat := range m.stats {
		if key.channelID == channelID {
			out = append(out, *stat)
		}
	}
	return out, nil
}

func (m *mockSocialRepo) UpsertStat(_ context.Context, channelID uint, name, value string, at time.Time) error {
	key := statKey{channelID: channelID, name: name}
	if stat, ok := m.stats[key]; ok {
		stat.Value = value
		stat.LastUpdated = at
		return nil
	}
	m.stats[key] = &model.SocialMediaChannelStat{
		ChannelID:   channelID,
		Name:        name,
		Value:       value,
		LastUpdated: at,
	}
	return nil
}

// mockVerifier returns a fixed identity, or an error when set.
type mockVerifier struct {
	identity *oauth.Identity
	err      error
}

func (m *mockVerifier) Verify(_ context.Context, _ string) (*oauth.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

// mockStatsFetcher serves canned stats and counts calls.
type mockStatsFetcher struct {
	stats map[string]string
	err   error
	calls int
}

func (m *mockStatsFetcher) FetchStats(_ context.Context, _, _ string) (map[string]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

type mockSponsorRepo struct {
	sponsors map[uint]*model.Sponsor
	nextID   uint
}

func newMockSponsorRepo() *mockSponsorRepo {
	return &mockSponsorRepo{sponsors: make(map[uint]*model.Sponsor), nextID: 1}
}

func (m *mockSponsorRepo) Create(_ context.Context, sponsor *model.Sponsor) error {
	sponsor.ID = m.nextID
	m.nextID++
	copied := *sponsor
	m.sponsors[sponsor.ID] = &copied
	return nil
}

func (m *mockSponsorRepo) GetByID(_ context.Context, siteID, id uint) (*model.Sponsor, error) {
	sponsor, ok := m.sponsors[id]
	if !ok || sponsor.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sponsor
	return &copied, nil
}

func (m *mockSponsorRepo) ListBySite(_ context.Context, siteID uint, activeOnly bool) ([]model.Sponsor, error) {
	out := []model.Sponsor{}
	for id := uint(1); id < m.nextID; id++ {
		if sponsor, ok := m.sponsors[id]; ok && sponsor.SiteID == siteID {
			if activeOnly && !sponsor.Active {
				continue
			}
			out = append(out, *sponsor)
		}
	}
	return out, nil
}

func (m *mockSponsorRepo) Update(_ context.Context, sponsor *model.Sponsor) error {
	copied := *sponsor
	m.sponsors[sponsor.ID] = &copied
	return nil
}

func (m *mockSponsorRepo) Delete(_ context.Context, siteID, id uint) (bool, error) {
	sponsor, ok := m.sponsors[id]
	if !ok || sponsor.SiteID != siteID {
		return false, nil
	}
	delete(m.sponsors, id)
	return true, nil
}

type mockJobRepo struct {
	jobs            map[uint]*model.JobListing
	activeCompanies map[uint]bool
	nextID          uint
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{
		jobs:            make(map[uint]*model.JobListing),
		activeCompanies: make(map[uint]bool),
		nextID:          1,
	}
}

func (m *mockJobRepo) Create(_ context.Context, job *model.JobListing) error {
	job.ID = m.nextID
	m.nextID++
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, siteID, id uint) (*model.JobListing, error) {
	job, ok := m.jobs[id]
	if !ok || job.SiteID != siteID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *job
	return &copied, nil
}

func (m *mockJobRepo) ListBySite(_ context.Context, siteID uint) ([]model.JobListing, error) {
	out := []model.JobListing{}
	for id := uint(1); id < m.nextID; id++ {
		if job, ok := m.jobs[id]; ok && job.SiteID == siteID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockJobRepo) ListPublic(_ context.Context, siteID uint) ([]model.JobListing, error) {
	out := []model.JobListing{}
	for id := uint(1); id < m.nextID; id++ {
		job, ok := m.jobs[id]
		if !ok || job.SiteID != siteID {
			continue
		}
		if job.Status == model.JobStatusActive && m.activeCompanies[job.CompanyID] {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockJobRepo) Update(_ context.Context, job *model.JobListing) error {
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, siteID, id uint) (bool, error) {
	job, ok := m.jobs[id]
	if !ok || job.SiteID != siteID {
		return false, nil
	}
	delete(m.jobs, id)
	return true, nil
}
