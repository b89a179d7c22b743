package service

import (
	"testing"

	"github.com/jurisflow/jurisflow/internal/api/dto"
	"github.com/jurisflow/jurisflow/internal/domain/client"
	ierr "github.com/jurisflow/jurisflow/internal/errors"
	"github.com/jurisflow/jurisflow/internal/testutil"
	"github.com/jurisflow/jurisflow/internal/types"
	"github.com/stretchr/testify/suite"
)

// pdfBytes is a minimal document carrying the PDF magic signature
var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< >>\n%%EOF")

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     DocumentService
	objectStore *testutil.InMemoryObjectStore
	testClient  *client.Client
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *DocumentServiceSuite) setupService() {
	stores := s.GetStores()
	s.objectStore = testutil.NewInMemoryObjectStore()
	s.service = NewDocumentService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		S3:           s.objectStore,
		RBAC:         s.GetRBAC(),
		Limiter:      s.GetLimiter(),
		ClientRepo:   stores.ClientRepo,
		MatterRepo:   stores.MatterRepo,
		DocumentRepo: stores.DocumentRepo,
	})
}

func (s *DocumentServiceSuite) setupTestData() {
	s.testClient = client.NewClient(s.GetContext(), types.ClientTypeIndividual)
	s.testClient.FirstName = "Souleymane"
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), s.testClient))
}

func (s *DocumentServiceSuite) TestUploadPDF() {
	resp, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "assignation.pdf",
		Data:     pdfBytes,
	})
	s.NoError(err)
	// The MIME type comes from the content, not the file name
	s.Equal("application/pdf", resp.MimeType)
	s.Equal(int64(len(pdfBytes)), resp.SizeBytes)
	s.NotEmpty(resp.StorageKey)

	stored, err := s.objectStore.Download(s.GetContext(), resp.StorageKey)
	s.NoError(err)
	s.Equal(pdfBytes, stored)
}

func (s *DocumentServiceSuite) TestUploadDetachedDocumentRejected() {
	_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		FileName: "note.txt",
		Data:     []byte("note interne"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestUploadDisallowedTypeRejected() {
	// ZIP magic bytes, not on the allow-list
	zipBytes := append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 64)...)

	_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "archive.pdf",
		Data:     zipBytes,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestUploadOversizeRejected() {
	oversize := make([]byte, types.MaxDocumentSizeBytes+1)
	for i := range oversize {
		oversize[i] = 'a'
	}

	_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "dossier-complet.txt",
		Data:     oversize,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestUploadEmptyRejected() {
	_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "vide.pdf",
		Data:     []byte{},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestUploadUnknownClientRejected() {
	_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: "client_missing",
		FileName: "piece.pdf",
		Data:     pdfBytes,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *DocumentServiceSuite) TestGetDocumentCarriesPresignedURL() {
	created, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "contrat.pdf",
		Data:     pdfBytes,
	})
	s.NoError(err)
	s.Empty(created.DownloadURL)

	fetched, err := s.service.GetDocument(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotEmpty(fetched.DownloadURL)
	s.Contains(fetched.DownloadURL, created.StorageKey)
}

func (s *DocumentServiceSuite) TestDeleteDocumentRemovesRowAndObject() {
	created, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "jugement.pdf",
		Data:     pdfBytes,
	})
	s.NoError(err)

	s.NoError(s.service.DeleteDocument(s.GetContext(), created.ID))

	_, err = s.service.GetDocument(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	exists, err := s.objectStore.Exists(s.GetContext(), created.StorageKey)
	s.NoError(err)
	s.False(exists)
}

func (s *DocumentServiceSuite) TestListDocumentsByClient() {
	for _, name := range []string{"piece-1.pdf", "piece-2.pdf"} {
		_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
			ClientID: s.testClient.ID,
			FileName: name,
			Data:     pdfBytes,
		})
		s.NoError(err)
	}

	filter := types.NewDocumentFilter()
	filter.ClientID = s.testClient.ID
	resp, err := s.service.ListDocuments(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
}

func (s *DocumentServiceSuite) TestUploadBudget() {
	// The upload budget allows 10 uploads per window
	for i := 0; i < 10; i++ {
		_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
			ClientID: s.testClient.ID,
			FileName: "piece.pdf",
			Data:     pdfBytes,
		})
		s.NoError(err)
	}

	_, err := s.service.UploadDocument(s.GetContext(), &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "piece.pdf",
		Data:     pdfBytes,
	})
	s.Error(err)
	s.True(ierr.IsRateLimited(err))
}

func (s *DocumentServiceSuite) TestUploadPermission() {
	ctx := types.SetPermissionTier(s.GetContext(), types.PermissionTierReadOnly)

	_, err := s.service.UploadDocument(ctx, &dto.UploadDocumentRequest{
		ClientID: s.testClient.ID,
		FileName: "piece.pdf",
		Data:     pdfBytes,
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
