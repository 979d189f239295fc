package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/mcp-lambda/errs"
	"github.com/viant/mcp-lambda/schema"
	"github.com/viant/mcp-lambda/validator"
	protoschema "github.com/viant/mcp-protocol/schema"
)

type catalog struct {
	Tools json.RawMessage `json:"tools"`
}

// Initialize fetches the backend tool catalog and registers every tool with the local endpoint
func (s *Service) Initialize(ctx context.Context) error {
	s.logger.Printf("requesting tool list...")
	descriptors, err := s.fetchCatalog(ctx)
	if err != nil {
		s.logger.Printf("error initializing bridge: %v", err)
		return err
	}
	s.logger.Printf("found %v tools in backend", len(descriptors))
	for _, descriptor := range descriptors {
		if err = s.register(descriptor); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) fetchCatalog(ctx context.Context) ([]*schema.ToolDescriptor, error) {
	response, err := s.client.Call(ctx, protoschema.MethodToolsList, nil)
	if err != nil {
		return nil, errs.NewCatalog("could not retrieve tools from backend", err)
	}
	if response.Error != nil {
		return nil, errs.NewCatalog("could not retrieve tools from backend", response.Error)
	}
	if isNull(response.Result) {
		return nil, errs.NewCatalog("could not retrieve tools from backend: response without result", nil)
	}
	list := &catalog{}
	if err = json.Unmarshal(response.Result, list); err != nil {
		return nil, errs.NewCatalog("could not decode tools from backend", err)
	}
	if isNull(list.Tools) {
		return nil, errs.NewCatalog("could not retrieve tools from backend: result without tools", nil)
	}
	var descriptors []*schema.ToolDescriptor
	if err = json.Unmarshal(list.Tools, &descriptors); err != nil {
		return nil, errs.NewCatalog("could not decode tools from backend", err)
	}
	return descriptors, nil
}

func (s *Service) register(descriptor *schema.ToolDescriptor) error {
	if descriptor == nil || descriptor.Name == "" {
		return errs.NewCatalog("backend listed a tool without name", nil)
	}
	s.logger.Printf("registering tool: %v", descriptor.Name)
	if descriptor.Description == nil || *descriptor.Description == "" {
		description := "Tool: " + descriptor.Name
		descriptor.Description = &description
	}
	var spec validator.Spec
	if descriptor.InputSchema != nil {
		if err := validator.Check(descriptor.RawInputSchema); err != nil {
			s.logger.Printf("warning: tool %v declares invalid input schema: %v", descriptor.Name, err)
		}
		spec = validator.Translate(descriptor.InputSchema)
	}
	name := descriptor.Name
	handler := func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		return s.Handle(ctx, name, args)
	}
	if err := s.server.RegisterTool(descriptor.Tool(), spec, handler); err != nil {
		return errs.NewCatalog(fmt.Sprintf("failed to register tool %v", name), err)
	}
	return nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
